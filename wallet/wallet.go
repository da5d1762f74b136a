package wallet

import (
	"time"

	"github.com/gxchain/gxwallet/common/crypto"
	"github.com/gxchain/gxwallet/prototype"
	"github.com/pkg/errors"
)

// Wallet is one custodied account. The signing key sits behind two layers:
// the password decrypts EncryptionKey, which in turn decrypts EncryptedWifkey.
type Wallet struct {
	Account         string     `json:"account"`
	PasswordPubkey  string     `json:"password_pubkey"`
	EncryptionKey   string     `json:"encryption_key"`
	EncryptedWifkey string     `json:"encrypted_wifkey"`
	BackupDate      *time.Time `json:"backup_date"`
	Partial         bool       `json:"partial,omitempty"`
}

// PasswordPubkey is the public key of the password seeded key
func PasswordPubkey(password string) (string, error) {
	k, err := prototype.PrivateKeyFromSeed(password)
	if err != nil {
		return "", err
	}
	return k.PubKey().String(), nil
}

func NewWallet(account, wif, password string) (*Wallet, error) {
	if _, err := prototype.PrivateKeyFromWIF(wif); err != nil {
		return nil, err
	}
	pub, err := PasswordPubkey(password)
	if err != nil {
		return nil, err
	}
	encryptionKey := crypto.RandomKey()
	return &Wallet{
		Account:         account,
		PasswordPubkey:  pub,
		EncryptionKey:   crypto.NewSeedCipher([]byte(password)).EncryptToHex(encryptionKey),
		EncryptedWifkey: crypto.NewSeedCipher(encryptionKey).EncryptToHex([]byte(wif)),
	}, nil
}

// CheckPassword fails with ErrInvalidPassword unless password created the wallet
func (w *Wallet) CheckPassword(password string) error {
	pub, err := PasswordPubkey(password)
	if err != nil || pub != w.PasswordPubkey {
		return errors.Wrapf(prototype.ErrInvalidPassword, "account %s", w.Account)
	}
	return nil
}

func (w *Wallet) encryptionKey(password string) ([]byte, error) {
	if err := w.CheckPassword(password); err != nil {
		return nil, err
	}
	key, err := crypto.NewSeedCipher([]byte(password)).DecryptHex(w.EncryptionKey)
	if err != nil {
		return nil, errors.Wrapf(prototype.ErrInvalidKeyFormat, "encryption key of %s: %v", w.Account, err)
	}
	return key, nil
}

// Unlock recovers the plaintext signing key
func (w *Wallet) Unlock(password string) (*prototype.PrivateKeyType, error) {
	key, err := w.encryptionKey(password)
	if err != nil {
		return nil, err
	}
	wif, err := crypto.NewSeedCipher(key).DecryptHex(w.EncryptedWifkey)
	if err != nil {
		return nil, errors.Wrapf(prototype.ErrInvalidKeyFormat, "wif key of %s: %v", w.Account, err)
	}
	return prototype.PrivateKeyFromWIF(string(wif))
}

// ChangePassword re-encrypts only the encryption key; the wif ciphertext is untouched.
func (w *Wallet) ChangePassword(oldPassword, newPassword string) error {
	key, err := w.encryptionKey(oldPassword)
	if err != nil {
		return err
	}
	pub, err := PasswordPubkey(newPassword)
	if err != nil {
		return err
	}
	w.PasswordPubkey = pub
	w.EncryptionKey = crypto.NewSeedCipher([]byte(newPassword)).EncryptToHex(key)
	return nil
}

// CloneAs shares the encrypted key with another account name
func (w Wallet) CloneAs(account string, partial bool) Wallet {
	w.Account = account
	w.Partial = partial
	w.BackupDate = nil
	return w
}
