package model

// Package is a priced offering tied to one Service. PriceOriginal is
// always derived from Price and Discount, never settable directly.
type Package struct {
	Base
	ServiceID     int64  `db:"service_id" json:"serviceId"`
	Type          string `db:"type" json:"type"`
	Price         int64  `db:"price" json:"price"`
	PriceOriginal int64  `db:"price_original" json:"priceOriginal"`
	Discount      int    `db:"discount" json:"discount"`
	Link          string `db:"link" json:"link"`
	Highlight     bool   `db:"highlight" json:"highlight"`

	Service      *Service         `db:"-" json:"service,omitempty"`
	Features     []PackageFeature `db:"-" json:"features"`
	Requirements []string         `db:"-" json:"requirements"`
}

// PackageFeature is the flattened join view: the shared feature name
// plus the per-package active flag.
type PackageFeature struct {
	Feature string `db:"name" json:"feature"`
	Status  bool   `db:"status" json:"status"`
}

// FeatureInput is a desired feature entry on create/update.
type FeatureInput struct {
	Feature string `json:"feature" binding:"max=255"`
	Status  bool   `json:"status"`
}

// PackageCreate is the validated create payload.
type PackageCreate struct {
	ServiceID    int64          `json:"serviceId"`
	Type         string         `json:"type"`
	Price        int64          `json:"price"`
	Discount     int            `json:"discount"`
	Link         string         `json:"link"`
	Highlight    bool           `json:"highlight"`
	Features     []FeatureInput `json:"features"`
	Requirements []string       `json:"requirements"`
}

// PackageUpdate is the validated PATCH payload. Nil means the field was
// not sent and stays untouched; a non-nil empty slice clears the set.
type PackageUpdate struct {
	ServiceID    *int64          `json:"serviceId"`
	Type         *string         `json:"type"`
	Price        *int64          `json:"price"`
	Discount     *int            `json:"discount"`
	Link         *string         `json:"link"`
	Highlight    *bool           `json:"highlight"`
	Features     *[]FeatureInput `json:"features"`
	Requirements *[]string       `json:"requirements"`
}
