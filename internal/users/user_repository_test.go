package users

import (
	"testing"

	"assethub/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestUserRecordLowercasesEmail(t *testing.T) {
	row := userRecord(&models.User{
		Name:           "Jane Doe",
		Email:          "Jane.Doe@Example.COM",
		Role:           "employee",
		OrganizationID: 1,
	})

	assert.Equal(t, "jane.doe@example.com", row["email"])
}
