package service

import (
	"context"
	"errors"
	"fmt"

	labeldomain "github.com/warungkita/pos/internal/label/domain"
	"github.com/warungkita/pos/internal/label/render"
	orderdomain "github.com/warungkita/pos/internal/order/domain"
	"github.com/warungkita/pos/internal/storage"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log      *zap.Logger
	Orders   orderdomain.Service
	Renderer *render.Renderer
	Store    *storage.Store
}

type Service struct {
	log      *zap.Logger
	orders   orderdomain.Service
	renderer *render.Renderer
	store    *storage.Store
}

func NewService(p ServiceParam) labeldomain.Service {
	return &Service{
		log:      p.Log.Named("label.service"),
		orders:   p.Orders,
		renderer: p.Renderer,
		store:    p.Store,
	}
}

func (s *Service) Print(ctx context.Context, orderNo string) (*labeldomain.PrintResult, error) {
	order, err := s.orders.GetByOrderNo(ctx, orderNo)
	if err != nil {
		if errors.Is(err, orderdomain.ErrNotFound) {
			return nil, labeldomain.ErrOrderNotFound
		}
		return nil, err
	}

	data := render.LabelData{
		OrderNo: order.OrderNo,
		Date:    order.CreatedAt.Format("02-01-2006"),
	}
	for _, detail := range order.Details {
		name := fmt.Sprintf("product #%d", detail.ProductID)
		if detail.Product != nil {
			name = detail.Product.Name
		}
		data.Items = append(data.Items, render.LineItem{
			Name: name,
			Qty:  detail.Qty,
		})
	}

	pdf, err := s.renderer.Render(data)
	if err != nil {
		s.log.Error("failed to render label",
			zap.String("orderno", orderNo),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", labeldomain.ErrRenderFailed, err)
	}

	fileName := render.SafeFileName(order.OrderNo)
	relPath, err := s.store.WriteExport(fileName, pdf)
	if err != nil {
		return nil, err
	}

	return &labeldomain.PrintResult{
		FileName: fileName,
		FilePath: relPath,
		FileURL:  s.store.URL(relPath),
	}, nil
}
