package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	basemodels "pos_commerce/internal/api/base/models"
	mdmodels "pos_commerce/internal/api/masterdata/models"
)

func TestBuildIndexSpecsPrefixesTenant(t *testing.T) {
	specs := BuildIndexSpecs(&mdmodels.ItemStore{})
	require.Len(t, specs, 1)
	assert.Equal(t, "item_store_code_unique", specs[0].Name)
	assert.True(t, specs[0].Unique)
	assert.Equal(t, bson.D{
		{Key: "tenant_id", Value: int32(1)},
		{Key: "store_code", Value: int32(1)},
		{Key: "item_code", Value: int32(1)},
	}, specs[0].Keys)
}

func TestBuildIndexSpecsSingleAndCompound(t *testing.T) {
	specs := BuildIndexSpecs(mdmodels.CategoryDiscount{})
	require.Len(t, specs, 2)
	assert.Equal(t, "category_discount_code_unique", specs[0].Name)
	assert.Equal(t, bson.D{{Key: "tenant_id", Value: int32(1)}, {Key: "category_code", Value: int32(1)}}, specs[0].Keys)
	assert.Equal(t, "discount_code_single", specs[1].Name)
	assert.False(t, specs[1].Unique)
}

type taggedDoc struct {
	basemodels.AbstractDocument `bson:",inline"`

	Code    string `bson:"code" index:"unique,sparse"`
	Created int64  `bson:"created" index:"compound:recent,order:-1"`
	Ignored string `bson:"-" index:"single:1"`
	Plain   string `bson:"plain"`
}

func TestBuildIndexSpecsOptions(t *testing.T) {
	specs := BuildIndexSpecs(taggedDoc{})
	require.Len(t, specs, 2)

	assert.Equal(t, "code_unique", specs[0].Name)
	assert.True(t, specs[0].Unique)
	assert.True(t, specs[0].Sparse)

	assert.Equal(t, "recent", specs[1].Name)
	assert.False(t, specs[1].Unique)
	assert.Equal(t, bson.D{{Key: "tenant_id", Value: int32(1)}, {Key: "created", Value: int32(-1)}}, specs[1].Keys)
}

func TestIndexMatches(t *testing.T) {
	spec := IndexSpec{Name: "x", Keys: bson.D{{Key: "tenant_id", Value: int32(1)}, {Key: "code", Value: int32(1)}}, Unique: true}
	assert.True(t, indexMatches(indexInfo{Key: bson.D{{Key: "tenant_id", Value: int32(1)}, {Key: "code", Value: float64(1)}}, Unique: true}, spec))
	assert.False(t, indexMatches(indexInfo{Key: bson.D{{Key: "code", Value: int32(1)}, {Key: "tenant_id", Value: int32(1)}}, Unique: true}, spec))
	assert.False(t, indexMatches(indexInfo{Key: bson.D{{Key: "tenant_id", Value: int32(1)}, {Key: "code", Value: int32(1)}}}, spec))
}

func TestIndexMatchesListIndexesDocument(t *testing.T) {
	// tài liệu dạng listIndexes trả về từ server
	raw, err := bson.Marshal(bson.D{
		{Key: "v", Value: int32(2)},
		{Key: "key", Value: bson.D{{Key: "tenant_id", Value: int32(1)}, {Key: "category_code", Value: int32(1)}}},
		{Key: "name", Value: "category_discount_code_unique"},
		{Key: "unique", Value: true},
	})
	require.NoError(t, err)

	var info indexInfo
	require.NoError(t, bson.Unmarshal(raw, &info))

	specs := BuildIndexSpecs(&mdmodels.CategoryDiscount{})
	var target IndexSpec
	for _, s := range specs {
		if s.Name == info.Name {
			target = s
		}
	}
	require.Equal(t, "category_discount_code_unique", target.Name)
	assert.True(t, indexMatches(info, target), "index compound đúng cấu hình không được bị tạo lại")

	target.Sparse = true
	assert.False(t, indexMatches(info, target))
}
