package constant

type ProductType string

const (
	ProductTypeMarket  ProductType = "market"
	ProductTypeWilling ProductType = "willing"
	ProductTypeBarter  ProductType = "barter"
)
