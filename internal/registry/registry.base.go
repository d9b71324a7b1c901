// Package registry cung cấp registry generic, thread-safe cho các singleton của ứng dụng
// (collections MongoDB, client Redis...).
package registry

import (
	"fmt"
	"sort"
	"sync"

	"pos_commerce/internal/common"
)

// Registry quản lý các item theo tên. Thread-safety đảm bảo bằng sync.RWMutex.
//
// Example:
//
//	collections := NewRegistry[*mongo.Collection]()
//	collections.Register("item_books", db.Collection("item_books"))
//	coll, err := collections.Lookup("item_books")
type Registry[T any] struct {
	items map[string]T
	mu    sync.RWMutex
}

// NewRegistry tạo và trả về một registry mới
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register đăng ký một item, ghi đè nếu tên đã tồn tại.
// isNew = false khi item cũ bị ghi đè.
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, fmt.Errorf("name cannot be empty: %w", common.ErrRequiredField)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get lấy item theo tên
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

// Lookup giống Get nhưng trả về common.ErrNotFound khi thiếu
func (r *Registry[T]) Lookup(name string) (T, error) {
	item, ok := r.Get(name)
	if !ok {
		return item, common.NotFoundf("registry item %q not registered", name)
	}
	return item, nil
}

// Names trả về danh sách tên đã đăng ký, sắp xếp tăng dần
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
