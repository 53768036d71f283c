package render

import (
	"fmt"
	"regexp"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Label sizing matches the 100x78mm thermal sticker the cashier
// printers are loaded with.
const (
	pageWidth  = 100
	pageHeight = 78
)

type LineItem struct {
	Name string
	Qty  int64
}

type LabelData struct {
	OrderNo string
	Date    string
	Items   []LineItem
}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the label PDF for one order.
func (r *Renderer) Render(data LabelData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(pageWidth, pageHeight).
		WithLeftMargin(6).
		WithRightMargin(6).
		WithTopMargin(5).
		Build()

	m := maroto.New(cfg)

	m.AddRow(8,
		text.NewCol(12, data.OrderNo+" / "+data.Date, props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(3, line.NewCol(12))

	m.AddRow(7,
		text.NewCol(12, "PESANAN :", props.Text{
			Size:  10,
			Style: fontstyle.Bold,
		}),
	)

	for _, item := range data.Items {
		m.AddRow(6,
			text.NewCol(12, fmt.Sprintf("• %s x %d", item.Name, item.Qty), props.Text{
				Size: 10,
			}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SafeFileName derives the pdf file name from an order number,
// replacing anything outside [A-Za-z0-9_-] with underscores.
func SafeFileName(orderNo string) string {
	return unsafeFileChars.ReplaceAllString(orderNo, "_") + ".pdf"
}
