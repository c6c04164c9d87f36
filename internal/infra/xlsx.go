package infra

import (
	"bytes"
	"fmt"

	"tunik/internal/model"

	"github.com/xuri/excelize/v2"
)

var pedidoHeaders = []string{"Pedido", "Fecha", "Proveedor", "Estado", "Producto", "Cantidad", "Precio", "Subtotal"}

// ExportPedidosXLSX writes one row per order line, followed by a summary sheet
// with one row per order and its total.
func ExportPedidosXLSX(pedidos []model.Pedido) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const detalle = "Detalle"
	const resumen = "Resumen"
	if err := f.SetSheetName("Sheet1", detalle); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(resumen); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, h := range pedidoHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(detalle, cell, h)
	}
	_ = f.SetCellStyle(detalle, "A1", "H1", bold)

	row := 2
	for _, p := range pedidos {
		proveedor := ""
		if p.Proveedor != nil {
			proveedor = p.Proveedor.Nombre
		}
		for _, it := range p.Items {
			nombre := fmt.Sprintf("#%d", it.ProductoID)
			precio := 0.0
			subtotal := 0.0
			if it.Producto != nil {
				nombre = it.Producto.NombreProductos
				precio = it.Producto.Precio.InexactFloat64()
				subtotal = precio * float64(it.Cantidad)
			}
			values := []any{p.IDPedidos, p.FechaPedido.Format("2006-01-02"), proveedor, p.Estado, nombre, it.Cantidad, precio, subtotal}
			if err := f.SetSheetRow(detalle, fmt.Sprintf("A%d", row), &values); err != nil {
				return nil, err
			}
			row++
		}
	}

	_ = f.SetSheetRow(resumen, "A1", &[]any{"Pedido", "Fecha", "Proveedor", "Estado", "Items", "Total"})
	_ = f.SetCellStyle(resumen, "A1", "F1", bold)
	for i, p := range pedidos {
		proveedor := ""
		if p.Proveedor != nil {
			proveedor = p.Proveedor.Nombre
		}
		values := []any{p.IDPedidos, p.FechaPedido.Format("2006-01-02"), proveedor, p.Estado, len(p.Items), p.Total.InexactFloat64()}
		if err := f.SetSheetRow(resumen, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}
