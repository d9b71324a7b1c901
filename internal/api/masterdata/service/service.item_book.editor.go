package mdsvc

import (
	mddto "pos_commerce/internal/api/masterdata/dto"
	mdmodels "pos_commerce/internal/api/masterdata/models"
	"pos_commerce/internal/common"
)

// Các hàm dưới đây sửa trực tiếp book truyền vào. Service luôn gọi trên bản Clone
// và chỉ lưu khi hàm trả về nil.

func findCategory(book *mdmodels.ItemBook, number int) (int, error) {
	for i := range book.Categories {
		if book.Categories[i].CategoryNumber == number {
			return i, nil
		}
	}
	return -1, common.NotFoundf("category_number %d không tồn tại trong item book %s", number, book.ItemBookID)
}

func findTab(category *mdmodels.Category, number int) (int, error) {
	for i := range category.Tabs {
		if category.Tabs[i].TabNumber == number {
			return i, nil
		}
	}
	return -1, common.NotFoundf("tab_number %d không tồn tại trong category %d", number, category.CategoryNumber)
}

func findButton(tab *mdmodels.Tab, x, y int) (int, error) {
	for i := range tab.Buttons {
		if tab.Buttons[i].PosX == x && tab.Buttons[i].PosY == y {
			return i, nil
		}
	}
	return -1, common.NotFoundf("button (pos_x=%d, pos_y=%d) không tồn tại trong tab %d", x, y, tab.TabNumber)
}

func locateTab(book *mdmodels.ItemBook, categoryNumber, tabNumber int) (*mdmodels.Tab, error) {
	ci, err := findCategory(book, categoryNumber)
	if err != nil {
		return nil, err
	}
	category := &book.Categories[ci]
	ti, err := findTab(category, tabNumber)
	if err != nil {
		return nil, err
	}
	return &category.Tabs[ti], nil
}

// ValidateCategories kiểm tra khóa không trùng ở mọi cấp của cây
func ValidateCategories(categories []mdmodels.Category) error {
	seenCategory := map[int]bool{}
	for _, c := range categories {
		if seenCategory[c.CategoryNumber] {
			return common.InvalidRequestf("category_number %d bị trùng", c.CategoryNumber)
		}
		seenCategory[c.CategoryNumber] = true
		if err := validateTabs(c.CategoryNumber, c.Tabs); err != nil {
			return err
		}
	}
	return nil
}

func validateTabs(categoryNumber int, tabs []mdmodels.Tab) error {
	seenTab := map[int]bool{}
	for _, t := range tabs {
		if seenTab[t.TabNumber] {
			return common.InvalidRequestf("tab_number %d bị trùng trong category %d", t.TabNumber, categoryNumber)
		}
		seenTab[t.TabNumber] = true
		if err := validateButtons(t.TabNumber, t.Buttons); err != nil {
			return err
		}
	}
	return nil
}

func validateButtons(tabNumber int, buttons []mdmodels.Button) error {
	type pos struct{ x, y int }
	seen := map[pos]bool{}
	for _, b := range buttons {
		p := pos{b.PosX, b.PosY}
		if seen[p] {
			return common.InvalidRequestf("button (pos_x=%d, pos_y=%d) bị trùng trong tab %d", b.PosX, b.PosY, tabNumber)
		}
		seen[p] = true
	}
	return nil
}

// AddCategory thêm category, lỗi AlreadyExists khi category_number đã có
func AddCategory(book *mdmodels.ItemBook, category mdmodels.Category) error {
	if _, err := findCategory(book, category.CategoryNumber); err == nil {
		return common.AlreadyExistsf("category_number %d đã tồn tại trong item book %s", category.CategoryNumber, book.ItemBookID)
	}
	if err := validateTabs(category.CategoryNumber, category.Tabs); err != nil {
		return err
	}
	if category.Tabs == nil {
		category.Tabs = []mdmodels.Tab{}
	}
	book.Categories = append(book.Categories, category)
	return nil
}

// UpdateCategory ghi các field khác nil của patch vào category
func UpdateCategory(book *mdmodels.ItemBook, number int, patch mddto.CategoryPatch) error {
	ci, err := findCategory(book, number)
	if err != nil {
		return err
	}
	if patch.CategoryNumber != nil && *patch.CategoryNumber != number {
		if _, err := findCategory(book, *patch.CategoryNumber); err == nil {
			return common.InvalidRequestf("category_number %d đã được dùng trong item book %s", *patch.CategoryNumber, book.ItemBookID)
		}
	}

	target := &book.Categories[ci]
	if patch.Tabs != nil {
		tabs := make([]mdmodels.Tab, 0, len(*patch.Tabs))
		for _, t := range *patch.Tabs {
			tabs = append(tabs, t.ToModel())
		}
		if err := validateTabs(number, tabs); err != nil {
			return err
		}
		target.Tabs = tabs
	}
	if patch.CategoryNumber != nil {
		target.CategoryNumber = *patch.CategoryNumber
	}
	if patch.Title != nil {
		target.Title = *patch.Title
	}
	if patch.Color != nil {
		target.Color = *patch.Color
	}
	return nil
}

// DeleteCategory xóa category cùng toàn bộ tab và button bên trong
func DeleteCategory(book *mdmodels.ItemBook, number int) error {
	ci, err := findCategory(book, number)
	if err != nil {
		return err
	}
	book.Categories = append(book.Categories[:ci], book.Categories[ci+1:]...)
	return nil
}

// AddTab thêm tab vào category
func AddTab(book *mdmodels.ItemBook, categoryNumber int, tab mdmodels.Tab) error {
	ci, err := findCategory(book, categoryNumber)
	if err != nil {
		return err
	}
	category := &book.Categories[ci]
	if _, err := findTab(category, tab.TabNumber); err == nil {
		return common.AlreadyExistsf("tab_number %d đã tồn tại trong category %d", tab.TabNumber, categoryNumber)
	}
	if err := validateButtons(tab.TabNumber, tab.Buttons); err != nil {
		return err
	}
	if tab.Buttons == nil {
		tab.Buttons = []mdmodels.Button{}
	}
	category.Tabs = append(category.Tabs, tab)
	return nil
}

// UpdateTab ghi các field khác nil của patch vào tab
func UpdateTab(book *mdmodels.ItemBook, categoryNumber, tabNumber int, patch mddto.TabPatch) error {
	ci, err := findCategory(book, categoryNumber)
	if err != nil {
		return err
	}
	category := &book.Categories[ci]
	ti, err := findTab(category, tabNumber)
	if err != nil {
		return err
	}
	if patch.TabNumber != nil && *patch.TabNumber != tabNumber {
		if _, err := findTab(category, *patch.TabNumber); err == nil {
			return common.InvalidRequestf("tab_number %d đã được dùng trong category %d", *patch.TabNumber, categoryNumber)
		}
	}

	target := &category.Tabs[ti]
	if patch.Buttons != nil {
		buttons := make([]mdmodels.Button, 0, len(*patch.Buttons))
		for _, b := range *patch.Buttons {
			buttons = append(buttons, b.ToModel())
		}
		if err := validateButtons(tabNumber, buttons); err != nil {
			return err
		}
		target.Buttons = buttons
	}
	if patch.TabNumber != nil {
		target.TabNumber = *patch.TabNumber
	}
	if patch.Title != nil {
		target.Title = *patch.Title
	}
	if patch.Color != nil {
		target.Color = *patch.Color
	}
	return nil
}

// DeleteTab xóa tab cùng các button bên trong
func DeleteTab(book *mdmodels.ItemBook, categoryNumber, tabNumber int) error {
	ci, err := findCategory(book, categoryNumber)
	if err != nil {
		return err
	}
	category := &book.Categories[ci]
	ti, err := findTab(category, tabNumber)
	if err != nil {
		return err
	}
	category.Tabs = append(category.Tabs[:ti], category.Tabs[ti+1:]...)
	return nil
}

// AddButton thêm button vào tab, lỗi AlreadyExists khi vị trí đã có
func AddButton(book *mdmodels.ItemBook, categoryNumber, tabNumber int, button mdmodels.Button) error {
	tab, err := locateTab(book, categoryNumber, tabNumber)
	if err != nil {
		return err
	}
	if _, err := findButton(tab, button.PosX, button.PosY); err == nil {
		return common.AlreadyExistsf("button (pos_x=%d, pos_y=%d) đã tồn tại trong tab %d", button.PosX, button.PosY, tabNumber)
	}
	tab.Buttons = append(tab.Buttons, button)
	return nil
}

// UpdateButton ghi các field khác nil của patch vào button tại (x, y)
func UpdateButton(book *mdmodels.ItemBook, categoryNumber, tabNumber, x, y int, patch mddto.ButtonPatch) error {
	tab, err := locateTab(book, categoryNumber, tabNumber)
	if err != nil {
		return err
	}
	bi, err := findButton(tab, x, y)
	if err != nil {
		return err
	}

	newX, newY := x, y
	if patch.PosX != nil {
		newX = *patch.PosX
	}
	if patch.PosY != nil {
		newY = *patch.PosY
	}
	if newX != x || newY != y {
		if _, err := findButton(tab, newX, newY); err == nil {
			return common.InvalidRequestf("button (pos_x=%d, pos_y=%d) đã được dùng trong tab %d", newX, newY, tabNumber)
		}
	}

	target := &tab.Buttons[bi]
	target.PosX, target.PosY = newX, newY
	if patch.Size != nil {
		target.Size = *patch.Size
	}
	if patch.ImageURL != nil {
		target.ImageURL = *patch.ImageURL
	}
	if patch.ColorText != nil {
		target.ColorText = *patch.ColorText
	}
	if patch.ItemCode != nil {
		target.ItemCode = *patch.ItemCode
	}
	return nil
}

// DeleteButton xóa đúng button tại (x, y)
func DeleteButton(book *mdmodels.ItemBook, categoryNumber, tabNumber, x, y int) error {
	tab, err := locateTab(book, categoryNumber, tabNumber)
	if err != nil {
		return err
	}
	bi, err := findButton(tab, x, y)
	if err != nil {
		return err
	}
	tab.Buttons = append(tab.Buttons[:bi], tab.Buttons[bi+1:]...)
	return nil
}
