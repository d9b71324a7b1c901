package mdsvc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mddto "pos_commerce/internal/api/masterdata/dto"
	mdmodels "pos_commerce/internal/api/masterdata/models"
	"pos_commerce/internal/common"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func sizePtr(v mdmodels.ButtonSize) *mdmodels.ButtonSize { return &v }

func sampleBook() *mdmodels.ItemBook {
	return &mdmodels.ItemBook{
		ItemBookID: "20250301-0001",
		Title:      "Lunch",
		Categories: []mdmodels.Category{
			{CategoryNumber: 1, Title: "Drinks", Tabs: []mdmodels.Tab{
				{TabNumber: 1, Title: "Hot", Buttons: []mdmodels.Button{
					{PosX: 0, PosY: 0, ItemCode: "COFFEE", Size: mdmodels.ButtonSizeSingle},
					{PosX: 0, PosY: 1, ItemCode: "TEA"},
					{PosX: 1, PosY: 0, ItemCode: "COCOA"},
				}},
				{TabNumber: 2, Title: "Cold", Buttons: []mdmodels.Button{}},
			}},
			{CategoryNumber: 2, Title: "Food", Tabs: []mdmodels.Tab{}},
		},
	}
}

func TestAddCategory(t *testing.T) {
	book := sampleBook()
	require.NoError(t, AddCategory(book, mdmodels.Category{CategoryNumber: 3, Title: "Dessert"}))
	require.Len(t, book.Categories, 3)
	assert.NotNil(t, book.Categories[2].Tabs)

	err := AddCategory(book, mdmodels.Category{CategoryNumber: 1})
	assert.True(t, errors.Is(err, common.ErrAlreadyExists))
}

func TestUpdateCategory(t *testing.T) {
	book := sampleBook()

	err := UpdateCategory(book, 1, mddto.CategoryPatch{CategoryNumber: intPtr(2)})
	assert.True(t, errors.Is(err, common.ErrInvalidInput), "chuyển sang số đã dùng phải bị từ chối")

	err = UpdateCategory(book, 9, mddto.CategoryPatch{Title: strPtr("x")})
	assert.True(t, errors.Is(err, common.ErrNotFound))
	assert.Contains(t, err.Error(), "category_number 9")

	require.NoError(t, UpdateCategory(book, 1, mddto.CategoryPatch{CategoryNumber: intPtr(5), Color: strPtr("#fff")}))
	assert.Equal(t, 5, book.Categories[0].CategoryNumber)
	assert.Equal(t, "Drinks", book.Categories[0].Title, "field nil giữ nguyên")
	assert.Equal(t, "#fff", book.Categories[0].Color)
	assert.Len(t, book.Categories[0].Tabs, 2)
}

func TestDeleteCategoryRemovesSubtree(t *testing.T) {
	book := sampleBook()
	require.NoError(t, DeleteCategory(book, 1))
	require.Len(t, book.Categories, 1)
	assert.Equal(t, 2, book.Categories[0].CategoryNumber)

	assert.True(t, errors.Is(DeleteCategory(book, 1), common.ErrNotFound))
}

func TestTabOperations(t *testing.T) {
	book := sampleBook()

	require.NoError(t, AddTab(book, 2, mdmodels.Tab{TabNumber: 1, Title: "Main"}))
	assert.True(t, errors.Is(AddTab(book, 2, mdmodels.Tab{TabNumber: 1}), common.ErrAlreadyExists))

	err := AddTab(book, 7, mdmodels.Tab{TabNumber: 1})
	assert.True(t, errors.Is(err, common.ErrNotFound))
	assert.Contains(t, err.Error(), "category_number 7")

	err = UpdateTab(book, 1, 1, mddto.TabPatch{TabNumber: intPtr(2)})
	assert.True(t, errors.Is(err, common.ErrInvalidInput))

	err = UpdateTab(book, 1, 9, mddto.TabPatch{Title: strPtr("x")})
	assert.True(t, errors.Is(err, common.ErrNotFound))
	assert.Contains(t, err.Error(), "tab_number 9")

	require.NoError(t, UpdateTab(book, 1, 2, mddto.TabPatch{Title: strPtr("Iced")}))
	assert.Equal(t, "Iced", book.Categories[0].Tabs[1].Title)

	require.NoError(t, DeleteTab(book, 1, 1))
	require.Len(t, book.Categories[0].Tabs, 1)
	assert.Equal(t, 2, book.Categories[0].Tabs[0].TabNumber)
}

func TestButtonOperations(t *testing.T) {
	book := sampleBook()

	err := AddButton(book, 1, 1, mdmodels.Button{PosX: 0, PosY: 0, ItemCode: "X"})
	assert.True(t, errors.Is(err, common.ErrAlreadyExists), "trùng vị trí phải lỗi AlreadyExists")

	require.NoError(t, AddButton(book, 1, 2, mdmodels.Button{PosX: 2, PosY: 3, ItemCode: "SODA"}))
	assert.Len(t, book.Categories[0].Tabs[1].Buttons, 1)

	err = UpdateButton(book, 1, 1, 0, 0, mddto.ButtonPatch{PosY: intPtr(1)})
	assert.True(t, errors.Is(err, common.ErrInvalidInput), "chuyển sang vị trí đã có phải bị từ chối")

	require.NoError(t, UpdateButton(book, 1, 1, 0, 0, mddto.ButtonPatch{PosX: intPtr(4), Size: sizePtr(mdmodels.ButtonSizeQuad)}))
	b := book.Categories[0].Tabs[0].Buttons[0]
	assert.Equal(t, 4, b.PosX)
	assert.Equal(t, 0, b.PosY)
	assert.Equal(t, mdmodels.ButtonSizeQuad, b.Size)
	assert.Equal(t, "COFFEE", b.ItemCode)

	err = UpdateButton(book, 1, 1, 9, 9, mddto.ButtonPatch{})
	assert.True(t, errors.Is(err, common.ErrNotFound))
	assert.Contains(t, err.Error(), "pos_x=9")
}

func TestDeleteButtonRemovesOnlyExactPosition(t *testing.T) {
	book := sampleBook()
	require.NoError(t, DeleteButton(book, 1, 1, 0, 0))

	buttons := book.Categories[0].Tabs[0].Buttons
	require.Len(t, buttons, 2, "các button cùng hàng hoặc cùng cột phải được giữ lại")
	assert.Equal(t, "TEA", buttons[0].ItemCode)
	assert.Equal(t, "COCOA", buttons[1].ItemCode)

	assert.True(t, errors.Is(DeleteButton(book, 1, 1, 0, 0), common.ErrNotFound))
}

func TestValidateCategoriesRejectsDuplicates(t *testing.T) {
	assert.NoError(t, ValidateCategories(sampleBook().Categories))

	dupCategory := []mdmodels.Category{{CategoryNumber: 1}, {CategoryNumber: 1}}
	assert.True(t, errors.Is(ValidateCategories(dupCategory), common.ErrInvalidInput))

	dupButton := []mdmodels.Category{{CategoryNumber: 1, Tabs: []mdmodels.Tab{{TabNumber: 1, Buttons: []mdmodels.Button{{PosX: 1, PosY: 1}, {PosX: 1, PosY: 1}}}}}}
	assert.True(t, errors.Is(ValidateCategories(dupButton), common.ErrInvalidInput))
}

func TestCloneIsDeep(t *testing.T) {
	book := sampleBook()
	draft := book.Clone()
	require.NoError(t, DeleteButton(draft, 1, 1, 0, 1))
	draft.Categories[0].Title = "changed"

	assert.Len(t, book.Categories[0].Tabs[0].Buttons, 3)
	assert.Equal(t, "Drinks", book.Categories[0].Title)
}
