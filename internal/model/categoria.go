package model

// CategoriaServicio groups detailing services (lavado, pulido, interiores...).
type CategoriaServicio struct {
	IDCategoriaServicios int    `gorm:"column:idcategoriaservicios;primaryKey;autoIncrement" json:"idcategoriaservicios"`
	NombreCategorias     string `gorm:"column:nombrecategorias;not null" json:"nombrecategorias"`
	Descripcion          string `gorm:"column:descripcion" json:"descripcion"`
}

func (CategoriaServicio) TableName() string { return "categoriaservicios" }
