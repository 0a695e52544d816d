package cart

import "storefront/core/product"

// Cart is a view, not a stored aggregate: it is rebuilt on every read
// by joining the persisted (user, product, quantity) rows against the
// live catalog, so items always carry current product data.
type Cart struct {
	UserID int          `json:"-"`
	Items  map[int]Item `json:"items"`
	Total  float64      `json:"total"`
}

type Item struct {
	Product   product.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal float64         `json:"lineTotal"`
}

type ItemUp struct {
	Quantity int `json:"quantity"`
}

// Build assembles the cart view from stored quantities and their
// product snapshots.
func Build(userID int, products []product.Product, quantities map[int]int) Cart {
	crt := Cart{
		UserID: userID,
		Items:  make(map[int]Item, len(products)),
	}

	for _, prd := range products {
		qty := quantities[prd.ID]
		item := Item{
			Product:   prd,
			Quantity:  qty,
			LineTotal: prd.Price * float64(qty),
		}
		crt.Items[prd.ID] = item
		crt.Total += item.LineTotal
	}

	return crt
}
