// Типы контракта inventory бэкенда.

package inventory

// Типы позиции каталога.
const (
	ItemTypeProduct = "PRODUCT"
	ItemTypeService = "SERVICE"
)

// Item — позиция каталога inventory сервиса.
//
// Поля зеркалят JSON контракт бэкенда, поэтому имена тегов фиксированы.
type Item struct {
	ID                 int64    `json:"id,omitempty"`
	Name               string   `json:"name"`
	ItemCode           string   `json:"itemCode"`
	SKU                string   `json:"sku,omitempty"`
	Barcode            string   `json:"barcode,omitempty"`
	ItemType           string   `json:"itemType"` // PRODUCT или SERVICE
	ImageURL           string   `json:"imageUrl,omitempty"`
	Category           string   `json:"category"`
	UnitOfMeasure      string   `json:"unitOfMeasure"`
	Brand              string   `json:"brand,omitempty"`
	Manufacturer       string   `json:"manufacturer,omitempty"`
	PurchasePrice      float64  `json:"purchasePrice"`
	SellingPrice       float64  `json:"sellingPrice"`
	MRP                *float64 `json:"mrp,omitempty"`
	TaxPercentage      *float64 `json:"taxPercentage,omitempty"`
	DiscountPercentage *float64 `json:"discountPercentage,omitempty"`
	HsnSacCode         string   `json:"hsnSacCode,omitempty"`
	Description        string   `json:"description,omitempty"`
	IsActive           bool     `json:"isActive"`
}

// SearchFilter — фильтр для списка и поиска позиций.
//
// Указатели отличают "не задано" от нулевого значения: незаданные поля
// не попадают в тело запроса.
type SearchFilter struct {
	SearchQuery *string `json:"searchQuery,omitempty"`
	Active      *bool   `json:"active,omitempty"`
	ItemType    *string `json:"itemType,omitempty"` // PRODUCT или SERVICE
	Brand       *string `json:"brand,omitempty"`
	Category    *string `json:"category,omitempty"`
}
