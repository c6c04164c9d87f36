package infra

// pdf.go renders a quotation as an A4 document with go-pdf/fpdf:
//   - shop header and quote number
//   - vehicle, owner and payment method
//   - one row per service with its negotiated price
//   - bold total

import (
	"bytes"
	"fmt"

	"tunik/internal/model"

	"github.com/go-pdf/fpdf"
)

// CotizacionFileName is the archive/attachment name of a quote's PDF.
func CotizacionFileName(id int) string {
	return fmt.Sprintf("cotizacion_%d.pdf", id)
}

// RenderCotizacionPDF returns the PDF bytes for c. Relations (vehicle with
// owner and brand, payment method, item services) should be preloaded;
// missing ones are rendered as blanks.
func RenderCotizacionPDF(c *model.Cotizacion) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, "Tunik Detailing", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW/2, 6, tr(fmt.Sprintf("Cotización N° %d", c.IDCotizaciones)), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 6, c.Fecha.Format("02/01/2006"), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW, 6, tr("Estado: "+c.Estado), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Vehicle / customer ───────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, tr("Vehículo"), "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	line := func(label, value string) {
		pdf.CellFormat(35, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW-35, 6, tr(value), "", 1, "L", false, 0, "")
	}
	line("Placa:", c.VehiculoID)
	if v := c.Vehiculo; v != nil {
		marca := ""
		if v.Marca != nil {
			marca = v.Marca.Descripcion + " "
		}
		line("Modelo:", marca+v.Modelo)
		line("Color:", v.Color)
		if v.Usuario != nil {
			line("Cliente:", v.Usuario.Nombre)
			line("Contacto:", v.Usuario.Email)
		}
	}
	if c.MetodoPago != nil {
		line("Forma de pago:", c.MetodoPago.NombreMetodo)
	}
	pdf.Ln(4)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.70
	col2 := contentW * 0.30

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(col1, 7, "Servicio", "1", 0, "L", true, 0, "")
	pdf.CellFormat(col2, 7, "Precio", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range c.Items {
		nombre := fmt.Sprintf("Servicio #%d", it.ServicioID)
		if it.Servicio != nil {
			nombre = it.Servicio.NombreServicios
		}
		pdf.CellFormat(col1, 7, tr(nombre), "1", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 7, "$"+it.PrecioChange.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1, 8, "TOTAL", "1", 0, "R", false, 0, "")
	pdf.CellFormat(col2, 8, "$"+c.Total.StringFixed(2), "1", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(contentW, 5, tr("Precios sujetos a inspección del vehículo. Esta cotización no constituye factura."), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render cotizacion %d: %w", c.IDCotizaciones, err)
	}
	return buf.Bytes(), nil
}
