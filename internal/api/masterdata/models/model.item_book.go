package models

import (
	basemodels "pos_commerce/internal/api/base/models"
)

// ButtonSize là kích thước nút trên lưới item book
type ButtonSize string

const (
	ButtonSizeSingle       ButtonSize = "Single"
	ButtonSizeDoubleWidth  ButtonSize = "DoubleWidth"
	ButtonSizeDoubleHeight ButtonSize = "DoubleHeight"
	ButtonSizeQuad         ButtonSize = "Quad"
)

// ButtonSizes trả về các giá trị hợp lệ
func ButtonSizes() []ButtonSize {
	return []ButtonSize{ButtonSizeSingle, ButtonSizeDoubleWidth, ButtonSizeDoubleHeight, ButtonSizeQuad}
}

// Valid kiểm tra size có nằm trong danh sách hỗ trợ
func (s ButtonSize) Valid() bool {
	for _, v := range ButtonSizes() {
		if s == v {
			return true
		}
	}
	return false
}

// ItemBook là bố cục nút bán hàng: category → tab → button (item_books).
// Khóa tự nhiên: (tenant_id, item_book_id).
type ItemBook struct {
	basemodels.AbstractDocument `bson:",inline"`

	ItemBookID string     `json:"item_book_id" bson:"item_book_id" index:"compound:item_book_id_unique"`
	Title      string     `json:"title" bson:"title"`
	Categories []Category `json:"categories" bson:"categories"`
}

// Category là cấp đầu của item book, khóa là CategoryNumber
type Category struct {
	CategoryNumber int    `json:"category_number" bson:"category_number"`
	Title          string `json:"title,omitempty" bson:"title,omitempty"`
	Color          string `json:"color,omitempty" bson:"color,omitempty"`
	Tabs           []Tab  `json:"tabs" bson:"tabs"`
}

// Tab nằm trong Category, khóa là TabNumber
type Tab struct {
	TabNumber int      `json:"tab_number" bson:"tab_number"`
	Title     string   `json:"title,omitempty" bson:"title,omitempty"`
	Color     string   `json:"color,omitempty" bson:"color,omitempty"`
	Buttons   []Button `json:"buttons" bson:"buttons"`
}

// Button nằm trong Tab, khóa là (PosX, PosY).
// UnitPrice và Description chỉ được điền khi đọc, không lưu.
type Button struct {
	PosX      int        `json:"pos_x" bson:"pos_x"`
	PosY      int        `json:"pos_y" bson:"pos_y"`
	Size      ButtonSize `json:"size,omitempty" bson:"size,omitempty"`
	ImageURL  string     `json:"image_url,omitempty" bson:"image_url,omitempty"`
	ColorText string     `json:"color_text,omitempty" bson:"color_text,omitempty"`
	ItemCode  string     `json:"item_code,omitempty" bson:"item_code,omitempty"`

	UnitPrice   *float64 `json:"unit_price,omitempty" bson:"-"`
	Description string   `json:"description,omitempty" bson:"-"`
}

// Clone trả về bản sao sâu, dùng trước khi sửa để không đụng vào bản đã load
func (b *ItemBook) Clone() *ItemBook {
	out := *b
	out.Categories = make([]Category, len(b.Categories))
	for i, c := range b.Categories {
		out.Categories[i] = c.clone()
	}
	return &out
}

func (c Category) clone() Category {
	out := c
	out.Tabs = make([]Tab, len(c.Tabs))
	for i, t := range c.Tabs {
		out.Tabs[i] = t.clone()
	}
	return out
}

func (t Tab) clone() Tab {
	out := t
	out.Buttons = make([]Button, len(t.Buttons))
	for i, b := range t.Buttons {
		out.Buttons[i] = b
		if b.UnitPrice != nil {
			p := *b.UnitPrice
			out.Buttons[i].UnitPrice = &p
		}
	}
	return out
}
