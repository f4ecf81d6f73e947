// Package credentials reads and writes the local "username,password" file.
package credentials

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"shop_pos/internal/common"
	"shop_pos/internal/global"
)

// Credentials is the single account stored in the credentials file
type Credentials struct {
	Username string `validate:"required,no_comma,no_xss"`
	Password string `validate:"required,no_comma"`
}

// Load reads the credentials file. A missing file returns nil and no error.
func Load(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, common.NewFileError(common.ErrCodeFileRead, path, err)
	}

	line := strings.TrimSpace(strings.SplitN(string(data), "\n", 2)[0])
	username, password, ok := strings.Cut(line, ",")
	if !ok {
		return nil, common.NewDataShapeError("Credentials file must contain username,password", path)
	}
	return &Credentials{
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
	}, nil
}

// Save validates c and overwrites the credentials file
func Save(path string, c Credentials) error {
	if err := global.Validator().Struct(c); err != nil {
		return common.NewError(common.ErrCodeDataValidation, "Invalid credentials", nil, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return common.NewFileError(common.ErrCodeFileWrite, path, err)
		}
	}
	if err := os.WriteFile(path, []byte(c.Username+","+c.Password), 0600); err != nil {
		return common.NewFileError(common.ErrCodeFileWrite, path, err)
	}
	return nil
}
