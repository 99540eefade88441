package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

func (p *PDFProvider) GenerateCarnet(ctx context.Context, data CarnetData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, data.PortalName+" — Carnê de Pagamento", props.Text{
			Size:  14,
			Style: fontstyle.Bold,
		}),
	)
	m.AddRow(14,
		col.New(6).Add(
			text.New(data.Name, props.Text{Style: fontstyle.Bold}),
			text.New(data.Company, props.Text{Top: 5}),
		),
		col.New(6).Add(
			text.New("Referência: "+data.AdvertiserID, props.Text{Align: align.Right}),
		),
	)

	for _, inst := range data.Installments {
		m.AddRow(10,
			text.NewCol(8, fmt.Sprintf("Parcela %d de %d", inst.Number, inst.Total), props.Text{
				Style: fontstyle.Bold,
				Size:  11,
				Top:   3,
			}),
			text.NewCol(4, "Vencimento: "+inst.DueDate, props.Text{
				Size:  10,
				Top:   3,
				Align: align.Right,
			}),
		)
		m.AddRow(8,
			text.NewCol(6, "Valor da parcela", props.Text{Size: 9}),
			text.NewCol(6, "R$ "+inst.Amount, props.Text{Size: 9, Align: align.Right}),
		)
		if data.PixPayload != "" {
			m.AddRow(22,
				code.NewBarCol(8, inst.Barcode, props.Barcode{
					Center:  false,
					Percent: 90,
				}),
				code.NewQrCol(4, data.PixPayload, props.Rect{
					Center:  true,
					Percent: 85,
				}),
			)
		} else {
			m.AddRow(22,
				code.NewBarCol(12, inst.Barcode, props.Barcode{
					Center:  false,
					Percent: 90,
				}),
			)
		}
		m.AddRow(6,
			text.NewCol(12, inst.BoletoLine, props.Text{Size: 8}),
		)
		m.AddRow(8,
			text.NewCol(12, data.Disclaimer, props.Text{Size: 6, Top: 2}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}
