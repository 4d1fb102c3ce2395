package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/catalogix/catalogd/internal/domain"
)

func float64Ptr(v float64) *float64 { return &v }

// checkDemoCatalog seeds a handful of demo rows so a fresh install has
// something to browse. Each product is keyed on sku and only created when
// absent.
func (a *Application) checkDemoCatalog() {
	demoTags := map[string][]string{
		"DEMO-MOUSE-01":  {"electronics", "accessories"},
		"DEMO-TSHIRT-01": {"apparel"},
		"DEMO-MUG-01":    {"kitchen", "gifts"},
	}

	demoProducts := []domain.Product{
		{
			Title:                "Demo Wireless Mouse",
			Description:          "Compact 2.4GHz wireless mouse with USB receiver",
			Category:             "electronics",
			Price:                19.99,
			DiscountPercentage:   5,
			Rating:               float64Ptr(4.2),
			Stock:                120,
			Brand:                "Acme",
			Sku:                  "DEMO-MOUSE-01",
			Weight:               0.09,
			Width:                6.2,
			Height:               3.5,
			Depth:                10.4,
			WarrantyInformation:  "1 year limited warranty",
			ShippingInformation:  "Ships in 1-2 business days",
			AvailabilityStatus:   "In Stock",
			ReturnPolicy:         "30 days return policy",
			MinimumOrderQuantity: 1,
			Images:               []string{"https://cdn.example.com/demo/mouse-1.png"},
			Thumbnail:            "https://cdn.example.com/demo/mouse-thumb.png",
			Barcode:              8801234567890,
			QrCode:               "https://cdn.example.com/demo/mouse-qr.png",
		},
		{
			Title:                "Demo Cotton T-Shirt",
			Description:          "Plain crew-neck t-shirt, 100% cotton",
			Category:             "apparel",
			Price:                9.5,
			DiscountPercentage:   0,
			Stock:                300,
			Brand:                "Acme",
			Sku:                  "DEMO-TSHIRT-01",
			Weight:               0.2,
			Width:                30,
			Height:               2,
			Depth:                40,
			WarrantyInformation:  "No warranty",
			ShippingInformation:  "Ships in 3-5 business days",
			AvailabilityStatus:   "In Stock",
			ReturnPolicy:         "14 days return policy",
			MinimumOrderQuantity: 2,
			Images:               []string{"https://cdn.example.com/demo/tshirt-1.png"},
			Thumbnail:            "https://cdn.example.com/demo/tshirt-thumb.png",
			Barcode:              8801234567891,
			QrCode:               "https://cdn.example.com/demo/tshirt-qr.png",
		},
		{
			Title:                "Demo Ceramic Mug",
			Description:          "350ml ceramic mug, dishwasher safe",
			Category:             "kitchen",
			Price:                6.75,
			DiscountPercentage:   10,
			Stock:                80,
			Brand:                "Acme",
			Sku:                  "DEMO-MUG-01",
			Weight:               0.35,
			Width:                8,
			Height:               9.5,
			Depth:                8,
			WarrantyInformation:  "No warranty",
			ShippingInformation:  "Ships in 1-2 business days",
			AvailabilityStatus:   "Low Stock",
			ReturnPolicy:         "30 days return policy",
			MinimumOrderQuantity: 6,
			Images:               []string{"https://cdn.example.com/demo/mug-1.png"},
			Thumbnail:            "https://cdn.example.com/demo/mug-thumb.png",
			Barcode:              8801234567892,
			QrCode:               "https://cdn.example.com/demo/mug-qr.png",
		},
	}

	for _, p := range demoProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("sku = ?", p.Sku).Count(&count)
		if count > 0 {
			continue
		}

		now := time.Now()
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := a.gormDB.Create(&p).Error; err != nil {
			zap.L().Error("failed to create demo product", zap.String("sku", p.Sku), zap.Error(err))
			continue
		}

		for _, name := range demoTags[p.Sku] {
			var tag domain.Tag
			if err := a.gormDB.Where(domain.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
				zap.L().Error("failed to create demo tag", zap.String("name", name), zap.Error(err))
				continue
			}
			if err := a.gormDB.Model(&p).Association("Tags").Append(&tag); err != nil {
				zap.L().Error("failed to link demo tag", zap.String("name", name), zap.Error(err))
			}
		}
		zap.L().Info("initialized demo product", zap.String("sku", p.Sku))
	}
}
