package trx

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/gxchain/gxwallet/iservices"
	"github.com/gxchain/gxwallet/prototype"
	"github.com/gxchain/gxwallet/wallet"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultExpirationSeconds = 30
	// MaxArbitraryDataLen bounds what SignArbitrary accepts
	MaxArbitraryDataLen = 64
)

// WalletFinder is the part of wallet.Store the pipeline reads
type WalletFinder interface {
	Find(chainID, account string) (*wallet.Wallet, error)
}

// Context carries one transaction through the pipeline stages
type Context struct {
	Account   string
	Operation prototype.Operation
	FeeAsset  prototype.ObjectID
	Broadcast bool
	// Prepare runs right after unlock with the key available, before resolution
	Prepare func(c *Context) error

	HeadBlock *prototype.DynamicGlobalProperties
	Fee       prototype.AssetAmount

	key *prototype.PrivateKeyType
}

// Result is either a signed transaction or, after broadcast, its confirmation too
type Result struct {
	Transaction  *prototype.SignedTransaction
	Confirmation *prototype.Confirmation
}

type Pipeline struct {
	api        iservices.IChainAPI
	wallets    WalletFinder
	chainID    string
	expiration uint32
	log        logrus.FieldLogger
}

func NewPipeline(api iservices.IChainAPI, wallets WalletFinder, chainID string, expiration uint32, log logrus.FieldLogger) *Pipeline {
	if expiration == 0 {
		expiration = DefaultExpirationSeconds
	}
	return &Pipeline{
		api:        api,
		wallets:    wallets,
		chainID:    chainID,
		expiration: expiration,
		log:        log,
	}
}

func (p *Pipeline) ChainID() string {
	return p.chainID
}

// UnlockKey decrypts the stored key of account without checking its authority
func (p *Pipeline) UnlockKey(account, password string) (*prototype.PrivateKeyType, error) {
	w, err := p.wallets.Find(p.chainID, account)
	if err != nil {
		return nil, err
	}
	return w.Unlock(password)
}

// Unlock loads the signing key. Partial wallets cannot satisfy the active
// authority on their own and are refused.
func (p *Pipeline) Unlock(c *Context, password string) error {
	w, err := p.wallets.Find(p.chainID, c.Account)
	if err != nil {
		return err
	}
	key, err := w.Unlock(password)
	if err != nil {
		return err
	}
	if w.Partial {
		return errors.Wrapf(prototype.ErrInsufficientAuthorityWeight, "account %s", c.Account)
	}
	c.key = key
	return nil
}

// Resolve fetches the head block and the fee concurrently
func (p *Pipeline) Resolve(ctx context.Context, c *Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		head, err := p.api.GetHeadBlock(gctx)
		if err != nil {
			return err
		}
		c.HeadBlock = head
		return nil
	})
	g.Go(func() error {
		fee, err := p.api.GetRequiredFee(gctx, c.Operation, c.FeeAsset)
		if err != nil {
			return err
		}
		c.Fee = fee
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	c.Operation.SetFee(c.Fee)
	return nil
}

func (p *Pipeline) Sign(c *Context) (*prototype.SignedTransaction, error) {
	if c.key == nil {
		return nil, errors.New("transaction context is locked")
	}
	if c.HeadBlock == nil {
		return nil, errors.New("transaction context has no head block")
	}
	trx := &prototype.Transaction{Expiration: c.HeadBlock.Time.Add(p.expiration)}
	if err := trx.SetReferenceBlock(c.HeadBlock.HeadBlockNumber, c.HeadBlock.HeadBlockID); err != nil {
		return nil, err
	}
	trx.AddOperation(c.Operation)
	if err := trx.Validate(); err != nil {
		return nil, err
	}
	signed := &prototype.SignedTransaction{Trx: trx}
	if err := signed.Sign(c.key, p.chainID); err != nil {
		return nil, err
	}
	return signed, nil
}

func (p *Pipeline) Dispatch(ctx context.Context, c *Context, signed *prototype.SignedTransaction) (*Result, error) {
	res := &Result{Transaction: signed}
	if !c.Broadcast {
		return res, nil
	}
	conf, err := p.api.Broadcast(ctx, signed)
	if err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{
		"account": c.Account,
		"op":      c.Operation.Type().String(),
		"block":   conf.BlockNum,
	}).Info("transaction broadcast")
	res.Confirmation = conf
	return res, nil
}

// Process runs unlock, prepare, resolve, sign and dispatch in order. Any failure aborts.
func (p *Pipeline) Process(ctx context.Context, c *Context, password string) (*Result, error) {
	if err := p.Unlock(c, password); err != nil {
		return nil, err
	}
	if c.Prepare != nil {
		if err := c.Prepare(c); err != nil {
			return nil, err
		}
	}
	if err := p.Resolve(ctx, c); err != nil {
		return nil, err
	}
	signed, err := p.Sign(c)
	if err != nil {
		return nil, err
	}
	return p.Dispatch(ctx, c, signed)
}

// SignArbitrary returns the hex compact signature of sha256(data) by account's
// key. Only canonical signatures are returned.
func (p *Pipeline) SignArbitrary(account, password string, data []byte) (string, error) {
	if len(data) > MaxArbitraryDataLen {
		return "", errors.Errorf("data is %d bytes, at most %d can be signed", len(data), MaxArbitraryDataLen)
	}
	key, err := p.UnlockKey(account, password)
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256(data)
	sig, err := key.SignDigestCanonical(digest[:])
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sig), nil
}
