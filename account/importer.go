package account

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gxchain/gxwallet/iservices"
	"github.com/gxchain/gxwallet/prototype"
	"github.com/gxchain/gxwallet/wallet"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tyler-smith/go-bip39"
)

const registerPath = "/account/register"

// Importer turns keys into stored wallets
type Importer struct {
	api     iservices.IChainAPI
	store   *wallet.Store
	chainID string
	faucet  string
	client  *http.Client
	log     logrus.FieldLogger
}

func NewImporter(api iservices.IChainAPI, store *wallet.Store, chainID, faucet string, log logrus.FieldLogger) *Importer {
	return &Importer{
		api:     api,
		store:   store,
		chainID: chainID,
		faucet:  strings.TrimRight(faucet, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

func uniqIDs(ids []prototype.ObjectID) []prototype.ObjectID {
	seen := make(map[prototype.ObjectID]bool, len(ids))
	out := make([]prototype.ObjectID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (i *Importer) setLastIndex(ctx context.Context) error {
	wallets, err := i.store.Load(i.chainID)
	if err != nil {
		return err
	}
	return i.store.SetActiveIndex(ctx, i.chainID, len(wallets)-1)
}

// Import stores a wallet for every account whose active authority references
// the key of wif. Accounts the key cannot control alone are stored as partial.
func (i *Importer) Import(ctx context.Context, wif, password string) ([]wallet.Wallet, error) {
	key, err := prototype.PrivateKeyFromWIF(wif)
	if err != nil {
		return nil, err
	}
	pub := key.PubKey().String()
	refs, err := i.api.GetKeyReferences(ctx, []string{pub})
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 || len(refs[0]) == 0 {
		return nil, errors.Wrapf(prototype.ErrAccountNotFound, "no account references %s", pub)
	}
	accounts, err := i.api.GetAccounts(ctx, uniqIDs(refs[0]))
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, errors.Wrapf(prototype.ErrAccountNotFound, "no account references %s", pub)
	}

	base, err := wallet.NewWallet("", wif, password)
	if err != nil {
		return nil, err
	}
	imported := make([]wallet.Wallet, 0, len(accounts))
	for _, acc := range accounts {
		w := base.CloneAs(acc.Name, !acc.Active.Satisfied(pub))
		if err := i.store.Add(ctx, i.chainID, w); err != nil {
			return nil, err
		}
		i.log.WithFields(logrus.Fields{"account": acc.Name, "partial": w.Partial}).Info("wallet imported")
		imported = append(imported, w)
	}
	if err := i.setLastIndex(ctx); err != nil {
		return nil, err
	}
	return imported, nil
}

// ImportReferences finds accounts sharing the first active key of the named,
// already stored accounts and stores a copy of the matching wallet for each.
func (i *Importer) ImportReferences(ctx context.Context, names []string) ([]wallet.Wallet, error) {
	known := make(map[prototype.ObjectID]bool)
	owner := make(map[string]string)
	var keys []string
	for _, name := range names {
		acc, err := i.api.GetAccount(ctx, name)
		if err != nil {
			return nil, err
		}
		known[acc.ID] = true
		if len(acc.Active.KeyAuths) == 0 {
			continue
		}
		pub := acc.Active.KeyAuths[0].Key
		if _, ok := owner[pub]; !ok {
			owner[pub] = acc.Name
			keys = append(keys, pub)
		}
	}
	if len(keys) == 0 {
		return nil, nil
	}
	refs, err := i.api.GetKeyReferences(ctx, keys)
	if err != nil {
		return nil, err
	}

	keyOf := make(map[prototype.ObjectID]string)
	var ids []prototype.ObjectID
	for n, list := range refs {
		if n >= len(keys) {
			break
		}
		for _, id := range list {
			if known[id] {
				continue
			}
			if _, ok := keyOf[id]; !ok {
				keyOf[id] = keys[n]
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	accounts, err := i.api.GetAccounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	wallets, err := i.store.Load(i.chainID)
	if err != nil {
		return nil, err
	}
	stored := make(map[string]wallet.Wallet, len(wallets))
	for _, w := range wallets {
		stored[w.Account] = w
	}
	var added []wallet.Wallet
	for _, acc := range accounts {
		if _, ok := stored[acc.Name]; ok {
			continue
		}
		pub := keyOf[acc.ID]
		src, ok := stored[owner[pub]]
		if !ok {
			continue
		}
		w := src.CloneAs(acc.Name, !acc.Active.Satisfied(pub))
		stored[acc.Name] = w
		wallets = append(wallets, w)
		added = append(added, w)
	}
	if len(added) == 0 {
		return nil, nil
	}
	if err := i.store.Save(ctx, i.chainID, wallets); err != nil {
		return nil, err
	}
	return added, nil
}

// SuggestBrainKey returns fresh bip39 words in upper case
func SuggestBrainKey() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(mnemonic), nil
}

type registerKeys struct {
	Name      string `json:"name"`
	OwnerKey  string `json:"owner_key"`
	ActiveKey string `json:"active_key"`
}

type registerRequest struct {
	Account registerKeys `json:"account"`
}

func (i *Importer) register(ctx context.Context, name, pub string) error {
	body, err := json.Marshal(registerRequest{Account: registerKeys{Name: name, OwnerKey: pub, ActiveKey: pub}})
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, i.faucet+registerPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")

	res, err := i.client.Do(req)
	if err != nil {
		return errors.Wrap(prototype.ErrTransport, err.Error())
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return errors.Wrapf(prototype.ErrTransport, "faucet: %s %s", res.Status, strings.TrimSpace(string(msg)))
	}
	return nil
}

// Created is a registered account. BrainKey is the only way to recover it.
type Created struct {
	Wallet   wallet.Wallet
	BrainKey string
}

// Create registers name through the faucet with a new brain key and stores its wallet
func (i *Importer) Create(ctx context.Context, name, password string) (*Created, error) {
	if name == "" {
		return nil, errors.New("account name is empty")
	}
	brainKey, err := SuggestBrainKey()
	if err != nil {
		return nil, err
	}
	key, err := prototype.PrivateKeyFromBrainKey(brainKey)
	if err != nil {
		return nil, err
	}
	if err := i.register(ctx, name, key.PubKey().String()); err != nil {
		return nil, err
	}
	w, err := wallet.NewWallet(name, key.ToWIF(), password)
	if err != nil {
		return nil, err
	}
	if err := i.store.Add(ctx, i.chainID, *w); err != nil {
		return nil, err
	}
	if err := i.setLastIndex(ctx); err != nil {
		return nil, err
	}
	i.log.WithField("account", name).Info("account registered")
	return &Created{Wallet: *w, BrainKey: brainKey}, nil
}
