package mdsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos_commerce/internal/api/base/service/storetest"
	mddto "pos_commerce/internal/api/masterdata/dto"
	mdmodels "pos_commerce/internal/api/masterdata/models"
	"pos_commerce/internal/common"
	"pos_commerce/internal/metrics"
)

type itemBookFixture struct {
	svc    *ItemBookService
	books  *storetest.MemStore[mdmodels.ItemBook]
	items  *storetest.MemStore[mdmodels.ItemCommon]
	stores *storetest.MemStore[mdmodels.ItemStore]
}

func newItemBookFixture(t *testing.T) *itemBookFixture {
	t.Helper()
	f := &itemBookFixture{
		books:  storetest.NewMemStore[mdmodels.ItemBook]("item_book_id"),
		items:  storetest.NewMemStore[mdmodels.ItemCommon]("item_code"),
		stores: storetest.NewMemStore[mdmodels.ItemStore]("item_code"),
	}
	f.svc = NewItemBookService(f.books, f.items, f.stores, nil, metrics.NewItemBookMetrics(prometheus.NewRegistry()))
	f.svc.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	return f
}

func TestItemBookRoundTrip(t *testing.T) {
	f := newItemBookFixture(t)
	ctx := context.Background()
	q := mustQuery(t, "T1")

	book, err := f.svc.Create(ctx, q, &mddto.ItemBookCreateInput{Title: "Menu"})
	require.NoError(t, err)
	assert.Equal(t, "20250301-0001", book.ItemBookID)

	_, err = f.svc.AddCategory(ctx, q, book.ItemBookID, mddto.CategoryInput{CategoryNumber: 1, Title: "Drinks"})
	require.NoError(t, err)
	_, err = f.svc.AddTab(ctx, q, book.ItemBookID, 1, mddto.TabInput{TabNumber: 1, Title: "Hot"})
	require.NoError(t, err)
	_, err = f.svc.AddButton(ctx, q, book.ItemBookID, 1, 1, mddto.ButtonInput{PosX: 0, PosY: 0, ItemCode: "COFFEE", Size: mdmodels.ButtonSizeSingle})
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, q, book.ItemBookID, "")
	require.NoError(t, err)
	require.Len(t, got.Categories, 1)
	require.Len(t, got.Categories[0].Tabs, 1)
	require.Len(t, got.Categories[0].Tabs[0].Buttons, 1)
	button := got.Categories[0].Tabs[0].Buttons[0]
	assert.Equal(t, "COFFEE", button.ItemCode)
	assert.Equal(t, mdmodels.ButtonSizeSingle, button.Size)
	assert.Equal(t, int64(4), got.Version, "create + 3 lần sửa")

	_, err = f.svc.AddButton(ctx, q, book.ItemBookID, 1, 1, mddto.ButtonInput{PosX: 0, PosY: 0})
	assert.True(t, errors.Is(err, common.ErrAlreadyExists))
}

func TestItemBookIDIncrementsWithinDay(t *testing.T) {
	f := newItemBookFixture(t)
	ctx := context.Background()
	q := mustQuery(t, "T1")

	first, err := f.svc.Create(ctx, q, &mddto.ItemBookCreateInput{Title: "A"})
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, q, &mddto.ItemBookCreateInput{Title: "B"})
	require.NoError(t, err)
	assert.Equal(t, "20250301-0001", first.ItemBookID)
	assert.Equal(t, "20250301-0002", second.ItemBookID)

	other, err := f.svc.Create(ctx, mustQuery(t, "T2"), &mddto.ItemBookCreateInput{Title: "C"})
	require.NoError(t, err)
	assert.Equal(t, "20250301-0001", other.ItemBookID, "sequence tính riêng theo tenant")
}

func TestItemBookCreateRejectsDuplicateKeysInTree(t *testing.T) {
	f := newItemBookFixture(t)
	_, err := f.svc.Create(context.Background(), mustQuery(t, "T1"), &mddto.ItemBookCreateInput{
		Title:      "Dup",
		Categories: []mddto.CategoryInput{{CategoryNumber: 1}, {CategoryNumber: 1}},
	})
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
	assert.Equal(t, 0, f.books.Len())
}

func TestUpdateTabInMissingCategoryLeavesBookUnchanged(t *testing.T) {
	f := newItemBookFixture(t)
	ctx := context.Background()
	q := mustQuery(t, "T1")

	book, err := f.svc.Create(ctx, q, &mddto.ItemBookCreateInput{Title: "Menu", Categories: []mddto.CategoryInput{{CategoryNumber: 1}}})
	require.NoError(t, err)

	_, err = f.svc.UpdateTab(ctx, q, book.ItemBookID, 9, 1, mddto.TabPatch{Title: strPtr("x")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
	assert.Contains(t, err.Error(), "category_number 9")
	assert.Equal(t, 0, f.books.Replaces(), "không được ghi khi thao tác lỗi")

	got, err := f.svc.Get(ctx, q, book.ItemBookID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Version)
}

func TestItemBookMissingBookAndTenantIsolation(t *testing.T) {
	f := newItemBookFixture(t)
	ctx := context.Background()

	book, err := f.svc.Create(ctx, mustQuery(t, "T1"), &mddto.ItemBookCreateInput{Title: "Menu"})
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, mustQuery(t, "T2"), book.ItemBookID, "")
	assert.True(t, errors.Is(err, common.ErrNotFound))
	_, err = f.svc.AddCategory(ctx, mustQuery(t, "T2"), book.ItemBookID, mddto.CategoryInput{CategoryNumber: 1})
	assert.True(t, errors.Is(err, common.ErrNotFound))
	assert.Contains(t, err.Error(), "item book")
	assert.True(t, errors.Is(f.svc.Delete(ctx, mustQuery(t, "T2"), book.ItemBookID), common.ErrNotFound))

	require.NoError(t, f.svc.Delete(ctx, mustQuery(t, "T1"), book.ItemBookID))
	_, err = f.svc.Get(ctx, mustQuery(t, "T1"), book.ItemBookID, "")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestItemBookConflictIsReturned(t *testing.T) {
	f := newItemBookFixture(t)
	ctx := context.Background()
	q := mustQuery(t, "T1")
	book, err := f.svc.Create(ctx, q, &mddto.ItemBookCreateInput{Title: "Menu"})
	require.NoError(t, err)

	f.books.FailNext(common.Conflictf("version moved"))
	_, err = f.svc.AddCategory(ctx, q, book.ItemBookID, mddto.CategoryInput{CategoryNumber: 1})
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestItemBookUpdateTitleAndCategories(t *testing.T) {
	f := newItemBookFixture(t)
	ctx := context.Background()
	q := mustQuery(t, "T1")
	book, err := f.svc.Create(ctx, q, &mddto.ItemBookCreateInput{Title: "Menu", Categories: []mddto.CategoryInput{{CategoryNumber: 1}}})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, q, book.ItemBookID, &mddto.ItemBookUpdateInput{Title: strPtr("Dinner")})
	require.NoError(t, err)
	assert.Equal(t, "Dinner", updated.Title)
	assert.Len(t, updated.Categories, 1)

	replaced := []mddto.CategoryInput{{CategoryNumber: 7}, {CategoryNumber: 8}}
	updated, err = f.svc.Update(ctx, q, book.ItemBookID, &mddto.ItemBookUpdateInput{Categories: &replaced})
	require.NoError(t, err)
	require.Len(t, updated.Categories, 2)
	assert.Equal(t, 7, updated.Categories[0].CategoryNumber)
}

func TestItemBookDetailEnrichment(t *testing.T) {
	f := newItemBookFixture(t)
	ctx := context.Background()
	q := mustQuery(t, "T1")

	require.NoError(t, f.items.Create(ctx, q, &mdmodels.ItemCommon{ItemCode: "COFFEE", Description: "Coffee", UnitPrice: 300}))
	require.NoError(t, f.items.Create(ctx, q, &mdmodels.ItemCommon{ItemCode: "TEA", Description: "Tea", UnitPrice: 250}))
	require.NoError(t, f.items.Create(ctx, q, &mdmodels.ItemCommon{ItemCode: "OLD", Description: "Old", UnitPrice: 100, IsDeleted: true}))
	require.NoError(t, f.stores.Create(ctx, q, &mdmodels.ItemStore{StoreCode: "S1", ItemCode: "COFFEE", StorePrice: 280}))
	require.NoError(t, f.stores.Create(ctx, mustQuery(t, "T2"), &mdmodels.ItemStore{StoreCode: "S1", ItemCode: "TEA", StorePrice: 1}))

	book, err := f.svc.Create(ctx, q, &mddto.ItemBookCreateInput{Title: "Menu", Categories: []mddto.CategoryInput{
		{CategoryNumber: 1, Tabs: []mddto.TabInput{{TabNumber: 1, Buttons: []mddto.ButtonInput{
			{PosX: 0, PosY: 0, ItemCode: "COFFEE"},
			{PosX: 1, PosY: 0, ItemCode: "TEA"},
			{PosX: 2, PosY: 0, ItemCode: "OLD"},
			{PosX: 3, PosY: 0, ItemCode: "GHOST"},
		}}}},
	}})
	require.NoError(t, err)

	_, err = f.svc.GetDetail(ctx, q, book.ItemBookID, "")
	assert.True(t, errors.Is(err, common.ErrInvalidInput), "store_code là bắt buộc")

	got, err := f.svc.GetDetail(ctx, q, book.ItemBookID, "S1")
	require.NoError(t, err)
	buttons := got.Categories[0].Tabs[0].Buttons

	require.NotNil(t, buttons[0].UnitPrice)
	assert.Equal(t, 280.0, *buttons[0].UnitPrice, "giá cửa hàng ghi đè giá chung")
	assert.Equal(t, "Coffee", buttons[0].Description)

	require.NotNil(t, buttons[1].UnitPrice)
	assert.Equal(t, 250.0, *buttons[1].UnitPrice, "giá của tenant khác không được dùng")

	assert.Equal(t, "not found", buttons[2].Description, "item đã xóa logic coi như không tồn tại")
	assert.Nil(t, buttons[2].UnitPrice)
	assert.Equal(t, "not found", buttons[3].Description)

	plain, err := f.svc.Get(ctx, q, book.ItemBookID, "")
	require.NoError(t, err)
	assert.Empty(t, plain.Categories[0].Tabs[0].Buttons[0].Description, "không có store_code thì không điền giá")
}

type fakeCounter struct {
	values  map[string]int64
	expires map[string]time.Duration
	err     error
}

func (c *fakeCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	if c.err != nil {
		return redis.NewIntResult(0, c.err)
	}
	c.values[key]++
	return redis.NewIntResult(c.values[key], nil)
}

func (c *fakeCounter) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	c.expires[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func TestRedisIDGenerator(t *testing.T) {
	counter := &fakeCounter{values: map[string]int64{}, expires: map[string]time.Duration{}}
	gen := NewRedisIDGenerator(counter, time.Hour)
	now := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)
	q := mustQuery(t, "T1")

	id, err := gen.Next(context.Background(), q, now)
	require.NoError(t, err)
	assert.Equal(t, "20251231-0001", id)
	id, err = gen.Next(context.Background(), q, now)
	require.NoError(t, err)
	assert.Equal(t, "20251231-0002", id)
	assert.Equal(t, time.Hour, counter.expires["item_book_seq:T1:20251231"])

	counter.err = errors.New("redis down")
	_, err = gen.Next(context.Background(), q, now)
	assert.True(t, errors.Is(err, common.ErrRepository))
}

func TestCreateRetriesWhenGeneratedIDExists(t *testing.T) {
	f := newItemBookFixture(t)
	ctx := context.Background()
	q := mustQuery(t, "T1")

	// Book tạo trước đó bằng cách dò sequence, sau đó chuyển sang Redis bắt đầu từ 1
	_, err := f.svc.Create(ctx, q, &mddto.ItemBookCreateInput{Title: "Old"})
	require.NoError(t, err)

	f.svc.ids = NewRedisIDGenerator(&fakeCounter{values: map[string]int64{}, expires: map[string]time.Duration{}}, 0)
	book, err := f.svc.Create(ctx, q, &mddto.ItemBookCreateInput{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, "20250301-0002", book.ItemBookID)
}
