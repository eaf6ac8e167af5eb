package validators_test

import (
	"testing"

	"github.com/Egor213/LogiStat/internal/controller/validators"
	"github.com/stretchr/testify/assert"
)

func TestUploadRules_ValidateFile(t *testing.T) {
	rules := validators.UploadRules{MaxSize: 100, AllowedExtensions: []string{".log", ".txt"}}

	testCases := []struct {
		name     string
		filename string
		size     int64
		wantErr  error
	}{
		{"ok log", "app.log", 10, nil},
		{"ok upper case", "APP.LOG", 10, nil},
		{"ok txt", "notes.txt", 100, nil},
		{"empty name", " ", 10, validators.ErrEmptyFilename},
		{"wrong extension", "image.png", 10, validators.ErrUnsupportedExtension},
		{"no extension", "app", 10, validators.ErrUnsupportedExtension},
		{"too large", "app.log", 101, validators.ErrFileTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := rules.ValidateFile(tc.filename, tc.size)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUploadRules_NoExtensionsAllowsAll(t *testing.T) {
	assert.True(t, validators.UploadRules{}.AllowedName("anything.bin"))
}

func TestValidateContent(t *testing.T) {
	assert.NoError(t, validators.ValidateContent(nil))
	assert.NoError(t, validators.ValidateContent([]byte("[2024-01-01] INFO ok\n")))
	assert.ErrorIs(t, validators.ValidateContent([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}), validators.ErrNotText)
	assert.ErrorIs(t, validators.ValidateContent([]byte{0x00, 0x01, 0x02, 0x03}), validators.ErrNotText)
}
