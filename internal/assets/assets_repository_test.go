package assets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAssetRecordUppercasesTag(t *testing.T) {
	row := assetRecord(AssetRequest{
		Tag:          "ast-0001",
		Name:         "Workstation",
		Category:     "Electronics",
		PurchaseDate: time.Now(),
	})

	assert.Equal(t, "AST-0001", row["tag"])
}
