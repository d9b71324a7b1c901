package database

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pos_commerce/internal/logger"
)

// TenantField là field được thêm vào đầu mọi compound index
const TenantField = "tenant_id"

// IndexSpec mô tả một index dựng từ tag `index` của model
type IndexSpec struct {
	Name   string
	Keys   bson.D
	Unique bool
	Sparse bool
}

// BuildIndexSpecs đọc tag `index` của model (kể cả struct nhúng bson ",inline").
//
// Cú pháp tag:
//   - single:1 hoặc single kèm order:-1 → index đơn {field}_single
//   - unique[,sparse] → unique index {field}_unique
//   - compound:<group>[,order:-1][,sparse] → compound index tên <group>, có tenant_id đứng đầu.
//     Group có hậu tố "_unique" là unique index.
func BuildIndexSpecs(model any) []IndexSpec {
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var specs []IndexSpec
	groups := map[string]*IndexSpec{}
	var groupOrder []string
	collectIndexSpecs(t, &specs, groups, &groupOrder)

	for _, name := range groupOrder {
		g := groups[name]
		keys := bson.D{{Key: TenantField, Value: int32(1)}}
		for _, k := range g.Keys {
			if k.Key != TenantField {
				keys = append(keys, k)
			}
		}
		g.Keys = keys
		specs = append(specs, *g)
	}
	sort.SliceStable(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

func collectIndexSpecs(t reflect.Type, specs *[]IndexSpec, groups map[string]*IndexSpec, groupOrder *[]string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		bsonName, bsonOpts, _ := strings.Cut(field.Tag.Get("bson"), ",")

		if field.Anonymous && strings.Contains(bsonOpts, "inline") {
			ft := field.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				collectIndexSpecs(ft, specs, groups, groupOrder)
			}
			continue
		}

		tag, ok := field.Tag.Lookup("index")
		if !ok || bsonName == "" || bsonName == "-" {
			continue
		}
		order := parseOrder(tag)
		for _, cfg := range parseIndexTag(tag) {
			_, sparse := cfg["sparse"]
			if _, ok := cfg["single"]; ok {
				*specs = append(*specs, IndexSpec{
					Name: bsonName + "_single",
					Keys: bson.D{{Key: bsonName, Value: order}},
				})
			}
			if _, ok := cfg["unique"]; ok {
				*specs = append(*specs, IndexSpec{
					Name:   bsonName + "_unique",
					Keys:   bson.D{{Key: bsonName, Value: int32(1)}},
					Unique: true,
					Sparse: sparse,
				})
			}
			if group, ok := cfg["compound"]; ok && group != "" {
				g, exists := groups[group]
				if !exists {
					g = &IndexSpec{Name: group, Unique: strings.HasSuffix(group, "_unique")}
					groups[group] = g
					*groupOrder = append(*groupOrder, group)
				}
				g.Keys = append(g.Keys, bson.E{Key: bsonName, Value: order})
				g.Sparse = g.Sparse || sparse
			}
		}
	}
}

// parseOrder trích thứ tự sắp xếp từ tag (1 hoặc -1)
func parseOrder(tag string) int32 {
	if strings.Contains(tag, "order:-1") || strings.Contains(tag, "single:-1") {
		return -1
	}
	return 1
}

// parseIndexTag tách tag index: nhóm cách nhau bởi ';', cấu hình trong nhóm cách nhau bởi ','
func parseIndexTag(tag string) []map[string]string {
	var result []map[string]string
	for _, part := range strings.Split(tag, ";") {
		entry := map[string]string{}
		for _, sub := range strings.Split(part, ",") {
			k, v, _ := strings.Cut(strings.TrimSpace(sub), ":")
			if k != "" {
				entry[k] = v
			}
		}
		result = append(result, entry)
	}
	return result
}

// CreateIndexes tạo index cho collection theo tag của model.
// Index cùng tên nhưng khác cấu hình bị drop rồi tạo lại.
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model any) error {
	log := logger.WithModule("database").WithField("collection", collection.Name())

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("không thể lấy danh sách index: %w", err)
	}
	existing := map[string]indexInfo{}
	for cursor.Next(ctx) {
		var info indexInfo
		if err := cursor.Decode(&info); err != nil {
			_ = cursor.Close(ctx)
			return fmt.Errorf("không thể giải mã thông tin index: %w", err)
		}
		existing[info.Name] = info
	}
	_ = cursor.Close(ctx)

	for _, spec := range BuildIndexSpecs(model) {
		if info, ok := existing[spec.Name]; ok {
			if indexMatches(info, spec) {
				log.WithField("index", spec.Name).Debug("index đã đúng cấu hình")
				continue
			}
			if _, err := collection.Indexes().DropOne(ctx, spec.Name); err != nil {
				return fmt.Errorf("không thể xóa index %s: %w", spec.Name, err)
			}
			log.WithField("index", spec.Name).Warn("đã xóa index cũ khác cấu hình")
		}

		opts := options.Index().SetName(spec.Name)
		if spec.Unique {
			opts.SetUnique(true)
		}
		if spec.Sparse {
			opts.SetSparse(true)
		}
		if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: spec.Keys, Options: opts}); err != nil {
			return fmt.Errorf("không thể tạo index %s: %w", spec.Name, err)
		}
		log.WithField("index", spec.Name).Info("đã tạo index")
	}
	return nil
}

// indexInfo là một phần kết quả listIndexes; Key giữ thứ tự field
type indexInfo struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique bool   `bson:"unique,omitempty"`
	Sparse bool   `bson:"sparse,omitempty"`
}

// indexMatches so sánh index hiện có với cấu hình mong muốn (thứ tự key, unique, sparse)
func indexMatches(info indexInfo, spec IndexSpec) bool {
	if len(info.Key) != len(spec.Keys) {
		return false
	}
	for i, want := range spec.Keys {
		if info.Key[i].Key != want.Key || toInt(info.Key[i].Value) != toInt(want.Value) {
			return false
		}
	}
	return info.Unique == spec.Unique && info.Sparse == spec.Sparse
}

func toInt(v any) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
