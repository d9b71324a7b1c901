package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStampReplaceKeepsOrigin(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	var prev AbstractDocument
	prev.StampCreate("T1", created)
	prev.Version = 4

	now := created.Add(time.Hour)
	doc := AbstractDocument{TenantID: "T2", ShardKey: "T2", Version: 99}
	doc.StampReplace(&prev, now)

	assert.Equal(t, "T1", doc.TenantID)
	assert.Equal(t, "T1", doc.ShardKey)
	assert.Equal(t, created, doc.CreatedAt)
	assert.Equal(t, now, doc.UpdatedAt)
	assert.Equal(t, int64(5), doc.Version)
}
