// Package storetest cung cấp TenantStore trong bộ nhớ cho test của các domain service và handler.
package storetest

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	basemodels "pos_commerce/internal/api/base/models"
	basesvc "pos_commerce/internal/api/base/service"
	"pos_commerce/internal/common"
)

// MemStore là TenantStore trong bộ nhớ dùng cho test, lọc theo filter của TenantQuery
type MemStore[T any] struct {
	mu    sync.Mutex
	key   string
	docs  []T
	clock time.Time
	// failNext trả về lỗi này ở lần gọi Create/Replace kế tiếp
	failNext error
	replaces int
}

// NewMemStore tạo MemStore với khóa tự nhiên key, đồng hồ cố định
func NewMemStore[T any](key string) *MemStore[T] {
	return &MemStore[T]{key: key, clock: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func toM(doc any) bson.M {
	raw, err := bson.Marshal(doc)
	if err != nil {
		panic(err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		panic(err)
	}
	return m
}

// cloneDoc sao chép sâu qua bson, giống dữ liệu đọc ra từ MongoDB
func cloneDoc[T any](doc *T) *T {
	raw, err := bson.Marshal(doc)
	if err != nil {
		panic(err)
	}
	var out T
	if err := bson.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}

func matches(doc any, filter bson.D) bool {
	m := toM(doc)
	for _, e := range filter {
		got := m[e.Key]
		if cond, ok := e.Value.(bson.M); ok {
			if in, ok := cond["$in"]; ok {
				found := false
				rv := reflect.ValueOf(in)
				for i := 0; i < rv.Len(); i++ {
					if fmt.Sprint(rv.Index(i).Interface()) == fmt.Sprint(got) {
						found = true
						break
					}
				}
				if !found {
					return false
				}
				continue
			}
		}
		if fmt.Sprint(got) != fmt.Sprint(e.Value) {
			return false
		}
	}
	return true
}

func (s *MemStore[T]) find(filter bson.D) (int, *T) {
	for i := range s.docs {
		if matches(&s.docs[i], filter) {
			return i, &s.docs[i]
		}
	}
	return -1, nil
}

func (s *MemStore[T]) Create(_ context.Context, q basesvc.TenantQuery, doc *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failNext; err != nil {
		s.failNext = nil
		return err
	}
	key := toM(doc)[s.key]
	if _, existing := s.find(q.Where(s.key, key).Filter()); existing != nil {
		return common.AlreadyExistsf("duplicate %v", key)
	}
	any(doc).(basemodels.Stampable).StampCreate(q.TenantID(), s.clock)
	s.docs = append(s.docs, *cloneDoc(doc))
	return nil
}

func (s *MemStore[T]) GetByCode(ctx context.Context, q basesvc.TenantQuery, code string) (*T, error) {
	return s.FindOne(ctx, q.Where(s.key, code))
}

func (s *MemStore[T]) FindOne(_ context.Context, q basesvc.TenantQuery) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, doc := s.find(q.Filter())
	if doc == nil {
		return nil, nil
	}
	return cloneDoc(doc), nil
}

func (s *MemStore[T]) FindAll(_ context.Context, q basesvc.TenantQuery) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []T{}
	for i := range s.docs {
		if matches(&s.docs[i], q.Filter()) {
			out = append(out, *cloneDoc(&s.docs[i]))
		}
	}
	return out, nil
}

func (s *MemStore[T]) List(ctx context.Context, q basesvc.TenantQuery, page, limit int64, sortBy []basemodels.SortField) (*basemodels.PaginateResult[T], error) {
	all, _ := s.FindAll(ctx, q)
	if len(sortBy) > 0 {
		f := sortBy[0]
		sort.SliceStable(all, func(i, j int) bool {
			a, b := fmt.Sprint(toM(&all[i])[f.Field]), fmt.Sprint(toM(&all[j])[f.Field])
			if f.Direction < 0 {
				return a > b
			}
			return a < b
		})
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	items := all[start:end]
	return &basemodels.PaginateResult[T]{
		Items: items, Page: page, Limit: limit, ItemCount: int64(len(items)),
		Total: total, TotalPage: basemodels.TotalPages(total, limit),
	}, nil
}

func (s *MemStore[T]) Update(_ context.Context, q basesvc.TenantQuery, code string, set bson.M) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, doc := s.find(q.Where(s.key, code).Filter())
	if doc == nil {
		return nil, common.NotFoundf("missing %s", code)
	}
	m := toM(doc)
	for k, v := range set {
		m[k] = v
	}
	var updated T
	raw, _ := bson.Marshal(m)
	if err := bson.Unmarshal(raw, &updated); err != nil {
		return nil, err
	}
	base := any(&updated).(basemodels.Stampable).Base()
	base.Version++
	s.docs[i] = updated
	return cloneDoc(&updated), nil
}

func (s *MemStore[T]) Replace(_ context.Context, q basesvc.TenantQuery, code string, doc *T, expectedVersion int64) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaces++
	if err := s.failNext; err != nil {
		s.failNext = nil
		return nil, err
	}
	i, current := s.find(q.Where(s.key, code).Filter())
	if current == nil {
		return nil, common.NotFoundf("missing %s", code)
	}
	prev := any(current).(basemodels.Stampable).Base()
	if prev.Version != expectedVersion {
		return nil, common.Conflictf("version moved")
	}
	any(doc).(basemodels.Stampable).StampReplace(prev, s.clock)
	s.docs[i] = *cloneDoc(doc)
	return doc, nil
}

func (s *MemStore[T]) Delete(_ context.Context, q basesvc.TenantQuery, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, doc := s.find(q.Where(s.key, code).Filter())
	if doc == nil {
		return common.NotFoundf("missing %s", code)
	}
	s.docs = append(s.docs[:i], s.docs[i+1:]...)
	return nil
}

func (s *MemStore[T]) Exists(ctx context.Context, q basesvc.TenantQuery, code string) (bool, error) {
	doc, err := s.GetByCode(ctx, q, code)
	return doc != nil, err
}

// FailNext cấu hình lỗi trả về ở lần Create/Replace kế tiếp
func (s *MemStore[T]) FailNext(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = err
}

// Replaces là số lần Replace đã được gọi
func (s *MemStore[T]) Replaces() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaces
}

// Len là số document đang lưu, mọi tenant
func (s *MemStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// MustQuery tạo TenantQuery hoặc dừng test
func MustQuery(t testing.TB, tenant string) basesvc.TenantQuery {
	t.Helper()
	q, err := basesvc.NewTenantQuery(tenant)
	if err != nil {
		t.Fatalf("NewTenantQuery(%q): %v", tenant, err)
	}
	return q
}
