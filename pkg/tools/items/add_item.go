package items

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/ilkoid/inventory-ai/pkg/config"
	"github.com/ilkoid/inventory-ai/pkg/inventory"
	"github.com/ilkoid/inventory-ai/pkg/tools"
	"github.com/ilkoid/inventory-ai/pkg/utils"
)

// === Add New Item ===

const addItemDescription = "Create a new inventory item. REQUIRES: Name, Category, Unit, Purchase Price, and Selling Price."

// AddItemTool — инструмент создания новой позиции каталога.
//
// Инварианты создания:
//   - itemCode без значения генерируется в формате ITM-#### (4 цифры)
//   - isActive всегда true независимо от входа
type AddItemTool struct {
	client      *inventory.Client
	description string
}

// NewAddItemTool создает инструмент добавления позиции.
func NewAddItemTool(client *inventory.Client, cfg config.ToolConfig) *AddItemTool {
	return &AddItemTool{
		client:      client,
		description: applyDescription(cfg, addItemDescription),
	}
}

// Definition возвращает определение инструмента для function calling.
func (t *AddItemTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name:        "add_item",
		Description: t.description,
		Parameters: tools.ObjectSchema(map[string]tools.Param{
			"name": {
				Type:        tools.TypeString,
				Description: "Item Name",
			},
			"category": {
				Type:        tools.TypeString,
				Description: "Category (e.g., Electronics, Raw Material)",
			},
			"unitOfMeasure": {
				Type:        tools.TypeString,
				Description: "Unit (e.g., PCS, KG, BOX)",
			},
			"purchasePrice": {
				Type:        tools.TypeNumber,
				Description: "Buying Price (Cost)",
			},
			"sellingPrice": {
				Type:        tools.TypeNumber,
				Description: "Selling Price (MRP/Sales)",
			},
			"itemType": {
				Type:        tools.TypeEnum,
				Default:     inventory.ItemTypeProduct,
				Enum:        []string{inventory.ItemTypeProduct, inventory.ItemTypeService},
				Description: "Item Type: PRODUCT or SERVICE (default PRODUCT)",
			},
			"brand":        {Type: tools.TypeString, Optional: true, Description: "Brand Name"},
			"manufacturer": {Type: tools.TypeString, Optional: true, Description: "Manufacturer Name"},
			"itemCode": {
				Type:        tools.TypeString,
				Optional:    true,
				Description: "Unique Item Code. If omitted, one will be generated.",
			},
			"sku":        {Type: tools.TypeString, Optional: true, Description: "Stock Keeping Unit"},
			"barcode":    {Type: tools.TypeString, Optional: true, Description: "Barcode"},
			"hsnSacCode": {Type: tools.TypeString, Optional: true, Description: "HSN/SAC Code"},
			"description": {
				Type:        tools.TypeString,
				Optional:    true,
				Description: "Item Description",
			},
			"taxPercentage":      {Type: tools.TypeNumber, Optional: true, Description: "Tax percentage"},
			"discountPercentage": {Type: tools.TypeNumber, Optional: true, Description: "Discount percentage"},
		}),
	}
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
func (t *AddItemTool) Execute(ctx context.Context, argsJSON string, token string) (string, error) {
	var args struct {
		Name               string   `json:"name"`
		Category           string   `json:"category"`
		UnitOfMeasure      string   `json:"unitOfMeasure"`
		PurchasePrice      *float64 `json:"purchasePrice"`
		SellingPrice       *float64 `json:"sellingPrice"`
		ItemType           string   `json:"itemType"`
		Brand              string   `json:"brand"`
		Manufacturer       string   `json:"manufacturer"`
		ItemCode           string   `json:"itemCode"`
		SKU                string   `json:"sku"`
		Barcode            string   `json:"barcode"`
		HsnSacCode         string   `json:"hsnSacCode"`
		Description        string   `json:"description"`
		TaxPercentage      *float64 `json:"taxPercentage"`
		DiscountPercentage *float64 `json:"discountPercentage"`
	}
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return "", fmt.Errorf("invalid arguments json: %w", err)
	}

	// Проверяем обязательные поля по статическому описанию параметров
	var missing []string
	if args.Name == "" {
		missing = append(missing, "name")
	}
	if args.Category == "" {
		missing = append(missing, "category")
	}
	if args.UnitOfMeasure == "" {
		missing = append(missing, "unitOfMeasure")
	}
	if args.PurchasePrice == nil {
		missing = append(missing, "purchasePrice")
	}
	if args.SellingPrice == nil {
		missing = append(missing, "sellingPrice")
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	// Дефолтный тип позиции
	if args.ItemType == "" {
		args.ItemType = inventory.ItemTypeProduct
	}
	if args.ItemType != inventory.ItemTypeProduct && args.ItemType != inventory.ItemTypeService {
		return "", fmt.Errorf("itemType must be PRODUCT or SERVICE, got: %s", args.ItemType)
	}

	// Автогенерация кода если модель его не придумала
	code := args.ItemCode
	if code == "" {
		code = GenerateItemCode()
	}

	payload := inventory.Item{
		Name:               args.Name,
		ItemCode:           code,
		SKU:                args.SKU,
		Barcode:            args.Barcode,
		ItemType:           args.ItemType,
		Category:           args.Category,
		UnitOfMeasure:      args.UnitOfMeasure,
		Brand:              args.Brand,
		Manufacturer:       args.Manufacturer,
		PurchasePrice:      *args.PurchasePrice,
		SellingPrice:       *args.SellingPrice,
		TaxPercentage:      args.TaxPercentage,
		DiscountPercentage: args.DiscountPercentage,
		HsnSacCode:         args.HsnSacCode,
		Description:        args.Description,
		IsActive:           true, // Новая позиция всегда активна
	}

	utils.Info("Creating item", "name", args.Name, "code", code)

	if _, err := t.client.CreateItem(ctx, token, payload); err != nil {
		return fmt.Sprintf("Failed to create item. Reason: %v", err), nil
	}

	return fmt.Sprintf("Success! Created Item '%s' with Code: %s.", args.Name, code), nil
}

// GenerateItemCode возвращает новый код позиции в формате ITM-####.
//
// Диапазон 1000–9999 гарантирует ровно четыре цифры.
func GenerateItemCode() string {
	return fmt.Sprintf("ITM-%d", 1000+rand.Intn(9000))
}
