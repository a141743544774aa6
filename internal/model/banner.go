package model

// BannerType identifies where a promotional banner is rendered.
type BannerType string

const (
	BannerSlider BannerType = "slider"
	BannerNavbar BannerType = "navbar"
)

// Banner is a backend-owned promotional asset.
type Banner struct {
	ID       string     `json:"_id,omitempty"`
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle,omitempty"`
	Image    string     `json:"image"`
	Link     string     `json:"link,omitempty"`
	Type     BannerType `json:"type"`
	Order    int        `json:"order,omitempty"`
	IsActive bool       `json:"isActive"`
}
