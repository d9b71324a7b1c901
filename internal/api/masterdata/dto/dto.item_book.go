package dto

import (
	mdmodels "pos_commerce/internal/api/masterdata/models"
)

// ItemBookCreateInput tạo item book, categories có thể rỗng
type ItemBookCreateInput struct {
	Title      string          `json:"title" validate:"required,max=128,no_xss"`
	Categories []CategoryInput `json:"categories,omitempty" validate:"dive"`
}

// ItemBookUpdateInput cập nhật tiêu đề hoặc thay toàn bộ danh sách category
type ItemBookUpdateInput struct {
	Title      *string          `json:"title,omitempty" validate:"omitempty,min=1,max=128,no_xss"`
	Categories *[]CategoryInput `json:"categories,omitempty" validate:"omitempty,dive"`
}

// CategoryInput là category gửi lên khi thêm mới
type CategoryInput struct {
	CategoryNumber int        `json:"category_number" validate:"min=0"`
	Title          string     `json:"title,omitempty" validate:"max=64,no_xss"`
	Color          string     `json:"color,omitempty" validate:"max=32"`
	Tabs           []TabInput `json:"tabs,omitempty" validate:"dive"`
}

// TabInput là tab gửi lên khi thêm mới
type TabInput struct {
	TabNumber int           `json:"tab_number" validate:"min=0"`
	Title     string        `json:"title,omitempty" validate:"max=64,no_xss"`
	Color     string        `json:"color,omitempty" validate:"max=32"`
	Buttons   []ButtonInput `json:"buttons,omitempty" validate:"dive"`
}

// ButtonInput là button gửi lên khi thêm mới
type ButtonInput struct {
	PosX      int                 `json:"pos_x" validate:"min=0"`
	PosY      int                 `json:"pos_y" validate:"min=0"`
	Size      mdmodels.ButtonSize `json:"size,omitempty" validate:"omitempty,button_size"`
	ImageURL  string              `json:"image_url,omitempty" validate:"omitempty,max=512"`
	ColorText string              `json:"color_text,omitempty" validate:"max=32"`
	ItemCode  string              `json:"item_code,omitempty" validate:"max=64"`
}

// CategoryPatch: field nil giữ nguyên giá trị cũ
type CategoryPatch struct {
	CategoryNumber *int        `json:"category_number,omitempty" validate:"omitempty,min=0"`
	Title          *string     `json:"title,omitempty" validate:"omitempty,max=64,no_xss"`
	Color          *string     `json:"color,omitempty" validate:"omitempty,max=32"`
	Tabs           *[]TabInput `json:"tabs,omitempty" validate:"omitempty,dive"`
}

// TabPatch: field nil giữ nguyên giá trị cũ
type TabPatch struct {
	TabNumber *int           `json:"tab_number,omitempty" validate:"omitempty,min=0"`
	Title     *string        `json:"title,omitempty" validate:"omitempty,max=64,no_xss"`
	Color     *string        `json:"color,omitempty" validate:"omitempty,max=32"`
	Buttons   *[]ButtonInput `json:"buttons,omitempty" validate:"omitempty,dive"`
}

// ButtonPatch: field nil giữ nguyên giá trị cũ
type ButtonPatch struct {
	PosX      *int                 `json:"pos_x,omitempty" validate:"omitempty,min=0"`
	PosY      *int                 `json:"pos_y,omitempty" validate:"omitempty,min=0"`
	Size      *mdmodels.ButtonSize `json:"size,omitempty" validate:"omitempty,button_size"`
	ImageURL  *string              `json:"image_url,omitempty" validate:"omitempty,max=512"`
	ColorText *string              `json:"color_text,omitempty" validate:"omitempty,max=32"`
	ItemCode  *string              `json:"item_code,omitempty" validate:"omitempty,max=64"`
}

// ToModel chuyển input sang model
func (in CategoryInput) ToModel() mdmodels.Category {
	tabs := make([]mdmodels.Tab, 0, len(in.Tabs))
	for _, t := range in.Tabs {
		tabs = append(tabs, t.ToModel())
	}
	return mdmodels.Category{CategoryNumber: in.CategoryNumber, Title: in.Title, Color: in.Color, Tabs: tabs}
}

// ToModel chuyển input sang model
func (in TabInput) ToModel() mdmodels.Tab {
	buttons := make([]mdmodels.Button, 0, len(in.Buttons))
	for _, b := range in.Buttons {
		buttons = append(buttons, b.ToModel())
	}
	return mdmodels.Tab{TabNumber: in.TabNumber, Title: in.Title, Color: in.Color, Buttons: buttons}
}

// ToModel chuyển input sang model
func (in ButtonInput) ToModel() mdmodels.Button {
	return mdmodels.Button{
		PosX:      in.PosX,
		PosY:      in.PosY,
		Size:      in.Size,
		ImageURL:  in.ImageURL,
		ColorText: in.ColorText,
		ItemCode:  in.ItemCode,
	}
}

// CategoriesToModel chuyển danh sách category input
func CategoriesToModel(in []CategoryInput) []mdmodels.Category {
	out := make([]mdmodels.Category, 0, len(in))
	for _, c := range in {
		out = append(out, c.ToModel())
	}
	return out
}

// ItemBookQuery là query của GET item book
type ItemBookQuery struct {
	StoreCode string `query:"store_code"`
}
