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

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateContract(ctx context.Context, data ContractData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, data.PortalName, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(10,
		text.NewCol(12, "Contrato de Publicidade", props.Text{
			Size:  13,
			Style: fontstyle.Bold,
		}),
	)

	m.AddRow(30,
		col.New(6).Add(
			text.New("Contratante", props.Text{Style: fontstyle.Bold}),
			text.New(data.Name, props.Text{Top: 5}),
			text.New(data.Company, props.Text{Top: 9}),
			text.New(data.Email, props.Text{Top: 13}),
			text.New(data.Phone, props.Text{Top: 17}),
		),
		col.New(6).Add(
			text.New("Contrato", props.Text{Style: fontstyle.Bold}),
			text.New("Referência: "+data.AdvertiserID, props.Text{Top: 5}),
			text.New("Início: "+data.StartDate, props.Text{Top: 9}),
			text.New("Término: "+data.EndDate, props.Text{Top: 13}),
			text.New("Ciclo: "+data.CycleLabel, props.Text{Top: 17}),
		),
	)

	m.AddRow(8,
		text.NewCol(6, "Valor base", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(6, "R$ "+data.BaseValue, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(6, "Total do contrato", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(6, "R$ "+data.Total, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(6, fmt.Sprintf("Parcelas (%dx)", data.InstallmentCount), props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(6, "R$ "+data.PerInstallment, props.Text{Size: 9, Align: align.Right}),
	)

	if data.PixPayload != "" {
		m.AddRow(10,
			text.NewCol(12, "Pagamento via PIX", props.Text{Style: fontstyle.Bold, Top: 4}),
		)
		m.AddRow(45,
			code.NewQrCol(4, data.PixPayload, props.Rect{
				Center:  false,
				Percent: 90,
			}),
			col.New(8).Add(
				text.New("Aponte a câmera do aplicativo do seu banco para o código ao lado.", props.Text{Size: 9}),
				text.New(data.PixPayload, props.Text{Size: 6, Top: 10}),
			),
		)
	}

	if data.BoletoLine != "" {
		m.AddRow(10,
			text.NewCol(12, "Linha de referência", props.Text{Style: fontstyle.Bold, Top: 4}),
		)
		m.AddRow(8,
			text.NewCol(12, data.BoletoLine, props.Text{Size: 10}),
		)
	}

	if data.Disclaimer != "" {
		m.AddRow(12,
			text.NewCol(12, data.Disclaimer, props.Text{Size: 7, Top: 4}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}
