package utils

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gxchain/gxwallet/cmd/wallet-cli/commands/utils/mock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestGetNewPassphrase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	reader := mock_utils.NewMockPasswordReader(ctrl)

	reader.EXPECT().ReadPassword(gomock.Any()).Return([]byte("secret"), nil).Times(2)
	p, err := GetNewPassphrase(reader)
	assert.NoError(t, err)
	assert.Equal(t, "secret", p)
}

func TestGetNewPassphraseMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	reader := mock_utils.NewMockPasswordReader(ctrl)

	gomock.InOrder(
		reader.EXPECT().ReadPassword(gomock.Any()).Return([]byte("secret"), nil),
		reader.EXPECT().ReadPassword(gomock.Any()).Return([]byte("secrets"), nil),
	)
	_, err := GetNewPassphrase(reader)
	assert.Error(t, err)
}

func TestGetPassphraseReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	reader := mock_utils.NewMockPasswordReader(ctrl)

	reader.EXPECT().ReadPassword(gomock.Any()).Return(nil, errors.New("no tty"))
	_, err := GetPassphrase(reader)
	assert.EqualError(t, err, "no tty")
}
