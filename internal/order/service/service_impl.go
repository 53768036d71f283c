package service

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	catalogdomain "github.com/warungkita/pos/internal/catalog/domain"
	"github.com/warungkita/pos/internal/clock"
	orderdomain "github.com/warungkita/pos/internal/order/domain"
	"github.com/warungkita/pos/internal/order/ordernumber"
	"github.com/warungkita/pos/pkg/db"
	"github.com/warungkita/pos/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// createAttempts bounds the retry loop when two orders race for the
// same sequence number and the unique index rejects the loser.
const createAttempts = 3

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        orderdomain.Repository
	CatalogRepo catalogdomain.Repository
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID       *snowflake.Node
	clock       clock.Clock
	repo        orderdomain.Repository
	catalogrepo catalogdomain.Repository
}

func NewService(p ServiceParam) orderdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("order.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		catalogrepo: p.CatalogRepo,
	}
}

func (s *Service) Create(ctx context.Context, req orderdomain.CreateOrderRequest) (*orderdomain.Order, error) {
	lines, qty, err := s.flattenPackages(req.Packages)
	if err != nil {
		return nil, err
	}

	status := orderdomain.StatusPending
	if req.Status != nil {
		if err := validStatus(*req.Status); err != nil {
			return nil, err
		}
		status = *req.Status
	}

	var created *orderdomain.Order
	for attempt := 1; attempt <= createAttempts; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			now := s.clock.Now()
			orderNo, err := s.nextOrderNumber(ctx, tx, now)
			if err != nil {
				return err
			}

			order := &orderdomain.Order{
				ID:           s.genID.Generate().Int64(),
				UUID:         uuid.NewString(),
				OrderNo:      orderNo,
				Status:       status,
				Qty:          qty,
				TotalPayment: req.TotalPayment,
				GrandTotal:   req.GrandTotal,
				Change:       req.Change,
			}
			if err := s.repo.Insert(ctx, tx, order); err != nil {
				return err
			}

			details, err := s.resolveDetails(ctx, tx, orderNo, lines)
			if err != nil {
				return err
			}
			if err := s.repo.InsertDetails(ctx, tx, details); err != nil {
				return err
			}

			created = order
			return nil
		})
		if err == nil {
			break
		}
		if db.IsDuplicateKeyErr(err) && attempt < createAttempts {
			s.log.Warn("order number conflict, retrying",
				zap.Int("attempt", attempt),
			)
			continue
		}
		return nil, err
	}

	return s.repo.FindByOrderNo(ctx, s.db, created.OrderNo)
}

func (s *Service) List(ctx context.Context, req orderdomain.ListOrdersRequest) (orderdomain.ListOrdersResponse, error) {
	page := req.Page.Normalize()

	orders, total, err := s.repo.List(ctx, s.db, page)
	if err != nil {
		return orderdomain.ListOrdersResponse{}, err
	}

	return orderdomain.ListOrdersResponse{
		PageInfo: pagination.BuildPageInfo(page, total),
		Orders:   orders,
	}, nil
}

func (s *Service) Get(ctx context.Context, orderUUID string) (*orderdomain.Order, error) {
	return s.repo.FindByUUID(ctx, s.db, orderUUID)
}

func (s *Service) GetByOrderNo(ctx context.Context, orderNo string) (*orderdomain.Order, error) {
	return s.repo.FindByOrderNo(ctx, s.db, orderNo)
}

// Update replaces the order's line items wholesale: existing details
// are dropped and the request's packages recreated under the same
// orderno, all inside one transaction.
func (s *Service) Update(ctx context.Context, orderUUID string, req orderdomain.UpdateOrderRequest) (*orderdomain.Order, error) {
	lines, qty, err := s.flattenPackages(req.Packages)
	if err != nil {
		return nil, err
	}
	if req.Status != nil {
		if err := validStatus(*req.Status); err != nil {
			return nil, err
		}
	}

	var orderNo string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByUUID(ctx, tx, orderUUID)
		if err != nil {
			return err
		}

		if err := s.repo.DeleteDetailsByOrderNo(ctx, tx, order.OrderNo); err != nil {
			return err
		}

		details, err := s.resolveDetails(ctx, tx, order.OrderNo, lines)
		if err != nil {
			return err
		}
		if err := s.repo.InsertDetails(ctx, tx, details); err != nil {
			return err
		}

		order.Qty = qty
		if req.Status != nil {
			order.Status = *req.Status
		}
		order.TotalPayment = req.TotalPayment
		order.GrandTotal = req.GrandTotal
		order.Change = req.Change
		order.Details = nil

		if err := s.repo.Update(ctx, tx, order); err != nil {
			return err
		}

		orderNo = order.OrderNo
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.FindByOrderNo(ctx, s.db, orderNo)
}

// Delete removes the order and its line items permanently. Orders are
// addressed by orderno here because that is the key on the receipt.
func (s *Service) Delete(ctx context.Context, orderNo string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByOrderNo(ctx, tx, orderNo)
		if err != nil {
			return err
		}

		if err := s.repo.DeleteDetailsByOrderNo(ctx, tx, order.OrderNo); err != nil {
			return err
		}

		return s.repo.HardDelete(ctx, tx, order)
	})
}

// nextOrderNumber scans every orderno issued for the month of now,
// trashed orders included, and formats max+1.
func (s *Service) nextOrderNumber(ctx context.Context, tx *gorm.DB, now time.Time) (string, error) {
	prefix := ordernumber.Prefix(now)
	existing, err := s.repo.OrderNumbers(ctx, tx, prefix)
	if err != nil {
		return "", err
	}
	return ordernumber.Format(now, ordernumber.NextSequence(existing))
}

// flattenPackages merges the request's packages into one line per
// product and returns the total quantity across all lines.
func (s *Service) flattenPackages(packages []orderdomain.PackageRequest) ([]orderdomain.ProductSelection, int64, error) {
	merged := make(map[string]int64)
	var order []string
	for _, pkg := range packages {
		for _, sel := range pkg.Products {
			if sel.Qty <= 0 {
				return nil, 0, orderdomain.ErrInvalidQty
			}
			if _, ok := merged[sel.UUID]; !ok {
				order = append(order, sel.UUID)
			}
			merged[sel.UUID] += sel.Qty
		}
	}
	if len(merged) == 0 {
		return nil, 0, orderdomain.ErrEmptyOrder
	}

	var total int64
	lines := make([]orderdomain.ProductSelection, 0, len(merged))
	for _, productUUID := range order {
		qty := merged[productUUID]
		total += qty
		lines = append(lines, orderdomain.ProductSelection{UUID: productUUID, Qty: qty})
	}
	return lines, total, nil
}

// resolveDetails maps each selected product uuid to its internal id.
// A uuid that matches no live product fails the whole batch.
func (s *Service) resolveDetails(ctx context.Context, tx *gorm.DB, orderNo string, lines []orderdomain.ProductSelection) ([]orderdomain.OrderDetail, error) {
	details := make([]orderdomain.OrderDetail, 0, len(lines))
	for _, line := range lines {
		product, err := s.catalogrepo.FindByUUID(ctx, tx, line.UUID, catalogdomain.ScopeDefault)
		if err != nil {
			if errors.Is(err, catalogdomain.ErrNotFound) {
				return nil, orderdomain.ErrProductNotFound
			}
			return nil, err
		}
		details = append(details, orderdomain.OrderDetail{
			ID:        s.genID.Generate().Int64(),
			OrderNo:   orderNo,
			ProductID: product.ID,
			Qty:       line.Qty,
		})
	}
	return details, nil
}

func validStatus(status orderdomain.OrderStatus) error {
	switch status {
	case orderdomain.StatusPending, orderdomain.StatusSuccess, orderdomain.StatusCancel:
		return nil
	default:
		return orderdomain.ErrInvalidStatus
	}
}
