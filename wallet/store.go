package wallet

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/gxchain/gxwallet/db/storage"
	"github.com/gxchain/gxwallet/prototype"
	"github.com/gxchain/gxwallet/wallet/native"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// local keys get "_<chain id>" appended by the chain scope
const (
	walletsKey    = "gxb_wallets"
	backupKey     = "gxb_wallets_bak3"
	indexKey      = "gxb_wallet_index"
	disclaimerKey = "gxb_disclaimer_accepted"
)

// Store keeps one wallet list per chain id in the local database and mirrors
// every write to the native backend. Local storage is authoritative.
type Store struct {
	db      storage.Database
	backend native.Backend
	log     logrus.FieldLogger

	mu      sync.Mutex
	backups map[string]bool
	merges  map[string]*onceWithErr
}

func NewStore(db storage.Database, backend native.Backend, log logrus.FieldLogger) *Store {
	return &Store{
		db:      db,
		backend: backend,
		log:     log,
		backups: make(map[string]bool),
		merges:  make(map[string]*onceWithErr),
	}
}

func (s *Store) scope(chainID string) storage.Database {
	return storage.NewScope(s.db, chainID)
}

func nativeKey(key, chainID string) string {
	return key + "_" + chainID
}

func decodeWallets(data []byte) ([]Wallet, error) {
	wallets := []Wallet{}
	if len(data) == 0 {
		return wallets, nil
	}
	if err := json.Unmarshal(data, &wallets); err != nil {
		return nil, errors.Wrap(prototype.ErrJSONFormatErr, err.Error())
	}
	if wallets == nil {
		wallets = []Wallet{}
	}
	return wallets, nil
}

// Load reads the local list only; an absent list is empty.
func (s *Store) Load(chainID string) ([]Wallet, error) {
	data, err := s.scope(chainID).Get([]byte(walletsKey))
	if storage.IsNotFound(err) {
		return []Wallet{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load wallets of %s", chainID)
	}
	return decodeWallets(data)
}

// Save writes locally, then mirrors to the native backend. A mirror failure is
// logged and never returned.
func (s *Store) Save(ctx context.Context, chainID string, wallets []Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, chainID, wallets)
}

func (s *Store) save(ctx context.Context, chainID string, wallets []Wallet) error {
	if wallets == nil {
		wallets = []Wallet{}
	}
	data, err := json.Marshal(wallets)
	if err != nil {
		return err
	}
	if err := s.scope(chainID).Put([]byte(walletsKey), data); err != nil {
		return errors.Wrapf(err, "save wallets of %s", chainID)
	}
	s.mirror(ctx, nativeKey(walletsKey, chainID), string(data))
	return nil
}

func (s *Store) mirror(ctx context.Context, key, value string) {
	if !s.backend.IsNative() {
		return
	}
	if err := s.backend.Set(ctx, key, value); err != nil {
		s.log.WithFields(logrus.Fields{"key": key, "platform": s.backend.Platform()}).
			Warnf("native mirror failed: %v", err)
	}
}

// BackupOnce copies the local list into the backup slot on the first call per
// chain id, unless a backup already exists.
func (s *Store) BackupOnce(chainID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backups[chainID] {
		return nil
	}
	db := s.scope(chainID)
	has, err := db.Has([]byte(backupKey))
	if err != nil {
		return err
	}
	if !has {
		wallets, err := s.Load(chainID)
		if err != nil {
			return err
		}
		data, err := json.Marshal(wallets)
		if err != nil {
			return err
		}
		if err := db.Put([]byte(backupKey), data); err != nil {
			return errors.Wrapf(err, "backup wallets of %s", chainID)
		}
		s.log.WithField("chain", chainID).Infof("backed up %d wallets", len(wallets))
	}
	s.backups[chainID] = true
	return nil
}

// Backup returns the list saved by BackupOnce
func (s *Store) Backup(chainID string) ([]Wallet, error) {
	data, err := s.scope(chainID).Get([]byte(backupKey))
	if storage.IsNotFound(err) {
		return []Wallet{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeWallets(data)
}

// mergeWallets unions local with remote by account. A remote entry replaces the
// local one in place; remote only accounts are appended in remote order.
func mergeWallets(local, remote []Wallet) []Wallet {
	merged := make([]Wallet, len(local), len(local)+len(remote))
	copy(merged, local)
	pos := make(map[string]int, len(local)+len(remote))
	for i, w := range merged {
		pos[w.Account] = i
	}
	seen := make(map[string]bool, len(remote))
	for _, w := range remote {
		if seen[w.Account] {
			continue
		}
		seen[w.Account] = true
		if i, ok := pos[w.Account]; ok {
			merged[i] = w
			continue
		}
		pos[w.Account] = len(merged)
		merged = append(merged, w)
	}
	return merged
}

// Merge reconciles the local list with the native one and persists the union
// locally. On a non native host the local list is returned unchanged.
func (s *Store) Merge(ctx context.Context, chainID string) ([]Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.merge(ctx, chainID)
}

func (s *Store) merge(ctx context.Context, chainID string) ([]Wallet, error) {
	local, err := s.Load(chainID)
	if err != nil {
		return nil, err
	}
	if !s.backend.IsNative() {
		return local, nil
	}
	payload, err := s.backend.GetWallets(ctx, nativeKey(walletsKey, chainID))
	if err != nil {
		return nil, err
	}
	remote, err := decodeWallets([]byte(payload))
	if err != nil {
		return nil, errors.Wrapf(prototype.ErrNativeBridge, "native wallets: %v", err)
	}
	merged := mergeWallets(local, remote)
	data, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	if err := s.scope(chainID).Put([]byte(walletsKey), data); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"chain": chainID, "local": len(local), "native": len(remote)}).
		Debugf("merged into %d wallets", len(merged))
	return merged, nil
}

// MergeOnce merges at most once per chain id in this process. A bridge failure
// is logged, the local list is returned and a later call retries.
func (s *Store) MergeOnce(ctx context.Context, chainID string) ([]Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	once, ok := s.merges[chainID]
	if !ok {
		once = &onceWithErr{}
		s.merges[chainID] = once
	}
	var merged []Wallet
	err := once.Do(func() error {
		var err error
		merged, err = s.merge(ctx, chainID)
		return err
	})
	if err != nil && !errors.Is(err, prototype.ErrNativeBridge) {
		return nil, err
	}
	if err != nil {
		s.log.WithField("chain", chainID).Warnf("merge failed, using local wallets: %v", err)
	}
	if merged == nil {
		return s.Load(chainID)
	}
	return merged, nil
}

func (s *Store) storedIndex(chainID string) (int, bool, error) {
	data, err := s.scope(chainID).Get([]byte(indexKey))
	if storage.IsNotFound(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	i, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, true, nil
	}
	return i, true, nil
}

func clampIndex(i, n int) int {
	if i > n-1 {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// ActiveIndex is the current wallet, always in [0, len-1] (0 when empty). An
// out of range stored value is corrected and persisted.
func (s *Store) ActiveIndex(ctx context.Context, chainID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeIndex(ctx, chainID)
}

func (s *Store) activeIndex(ctx context.Context, chainID string) (int, error) {
	i, ok, err := s.storedIndex(chainID)
	if err != nil || !ok {
		return 0, err
	}
	wallets, err := s.Load(chainID)
	if err != nil {
		return 0, err
	}
	if c := clampIndex(i, len(wallets)); c != i {
		return c, s.putIndex(ctx, chainID, c)
	}
	return i, nil
}

func (s *Store) SetActiveIndex(ctx context.Context, chainID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setActiveIndex(ctx, chainID, index)
}

func (s *Store) setActiveIndex(ctx context.Context, chainID string, index int) error {
	wallets, err := s.Load(chainID)
	if err != nil {
		return err
	}
	return s.putIndex(ctx, chainID, clampIndex(index, len(wallets)))
}

func (s *Store) putIndex(ctx context.Context, chainID string, index int) error {
	v := strconv.Itoa(index)
	if err := s.scope(chainID).Put([]byte(indexKey), []byte(v)); err != nil {
		return err
	}
	s.mirror(ctx, nativeKey(indexKey, chainID), v)
	return nil
}

func (s *Store) AcceptedDisclaimer(chainID string) (bool, error) {
	data, err := s.scope(chainID).Get([]byte(disclaimerKey))
	if storage.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return string(data) == "1", nil
}

func (s *Store) SetAcceptedDisclaimer(chainID string, accepted bool) error {
	if accepted {
		return s.scope(chainID).Put([]byte(disclaimerKey), []byte("1"))
	}
	return s.scope(chainID).Delete([]byte(disclaimerKey))
}

func indexOf(wallets []Wallet, account string) int {
	for i, w := range wallets {
		if w.Account == account {
			return i
		}
	}
	return -1
}

// Find returns the stored wallet of account
func (s *Store) Find(chainID, account string) (*Wallet, error) {
	wallets, err := s.Load(chainID)
	if err != nil {
		return nil, err
	}
	i := indexOf(wallets, account)
	if i < 0 {
		return nil, errors.Wrapf(prototype.ErrAccountNotFound, "no wallet for %s", account)
	}
	w := wallets[i]
	return &w, nil
}

// Add inserts w, replacing any wallet of the same account, and makes it active
func (s *Store) Add(ctx context.Context, chainID string, w Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	wallets, err := s.Load(chainID)
	if err != nil {
		return err
	}
	active := len(wallets)
	if i := indexOf(wallets, w.Account); i >= 0 {
		wallets[i] = w
		active = i
	} else {
		wallets = append(wallets, w)
	}
	if err := s.save(ctx, chainID, wallets); err != nil {
		return err
	}
	return s.putIndex(ctx, chainID, active)
}

// Update replaces the wallet of w.Account
func (s *Store) Update(ctx context.Context, chainID string, w Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	wallets, err := s.Load(chainID)
	if err != nil {
		return err
	}
	i := indexOf(wallets, w.Account)
	if i < 0 {
		return errors.Wrapf(prototype.ErrAccountNotFound, "no wallet for %s", w.Account)
	}
	wallets[i] = w
	return s.save(ctx, chainID, wallets)
}

func (s *Store) Delete(ctx context.Context, chainID, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	wallets, err := s.Load(chainID)
	if err != nil {
		return err
	}
	i := indexOf(wallets, account)
	if i < 0 {
		return errors.Wrapf(prototype.ErrAccountNotFound, "no wallet for %s", account)
	}
	wallets = append(wallets[:i], wallets[i+1:]...)
	if err := s.save(ctx, chainID, wallets); err != nil {
		return err
	}
	_, err = s.activeIndex(ctx, chainID)
	return err
}

// MarkBackedUp records when account was last exported
func (s *Store) MarkBackedUp(ctx context.Context, chainID, account string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	wallets, err := s.Load(chainID)
	if err != nil {
		return err
	}
	i := indexOf(wallets, account)
	if i < 0 {
		return errors.Wrapf(prototype.ErrAccountNotFound, "no wallet for %s", account)
	}
	at = at.UTC()
	wallets[i].BackupDate = &at
	return s.save(ctx, chainID, wallets)
}
