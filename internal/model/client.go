package model

// Client is a customer of the agency shown on the public site.
type Client struct {
	Base
	Name     string `db:"name" json:"name"`
	Industry string `db:"industry" json:"industry"`
	LogoKey  string `db:"logo_key" json:"logoKey"`
	Website  string `db:"website" json:"website"`
}
