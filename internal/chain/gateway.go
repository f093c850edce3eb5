package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/encorelab/moment-nft-service/internal/adapter"
	"github.com/encorelab/moment-nft-service/internal/domain"
)

// editionsABI describes the capability surface of the editions contract. The
// contract's internals (payment splitting, access control) are opaque to this
// service; only these entry points matter.
const editionsABI = `[
	{"inputs":[{"name":"momentId","type":"uint256"},{"name":"metadataURI","type":"string"},{"name":"price","type":"uint256"},{"name":"duration","type":"uint256"},{"name":"maxSupply","type":"uint256"},{"name":"revenueSplitTarget","type":"address"},{"name":"rarity","type":"uint8"}],"name":"createEdition","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"momentId","type":"uint256"},{"name":"quantity","type":"uint256"}],"name":"mint","outputs":[],"stateMutability":"payable","type":"function"},
	{"inputs":[{"name":"momentId","type":"uint256"}],"name":"getEdition","outputs":[{"name":"exists","type":"bool"},{"name":"metadataURI","type":"string"},{"name":"price","type":"uint256"},{"name":"startTime","type":"uint64"},{"name":"endTime","type":"uint64"},{"name":"maxSupply","type":"uint256"},{"name":"minted","type":"uint256"},{"name":"active","type":"bool"},{"name":"rarity","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"momentId","type":"uint256"}],"name":"isActive","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"momentId","type":"uint256"}],"name":"totalMinted","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

// Gateway is the capability interface over the editions contract. Every call
// is asynchronous and independently failable; CreateEdition and Mint return a
// transaction hash at broadcast time, which is a distinct state from
// confirmation; callers must not assume success until WaitForConfirmation
// reports it, and must treat an indeterminate watch as "re-check via
// GetEdition", never as failure.
//
//go:generate mockgen -source=gateway.go -destination=../mocks/gateway.go -package=mocks -mock_names=Gateway=MockGateway
type Gateway interface {
	// CreateEdition dispatches an edition-creation transaction. The contract
	// rejects a second edition for the same moment.
	CreateEdition(ctx context.Context, momentID uint64, params domain.MintParams, revenueSplitTarget string) (string, error)

	// Mint dispatches a mint transaction carrying paymentWei. The contract
	// rejects inactive windows, exhausted supply, and underpayment.
	Mint(ctx context.Context, momentID uint64, quantity uint64, paymentWei *big.Int) (string, error)

	// GetEdition reads the authoritative edition state; nil means absent
	GetEdition(ctx context.Context, momentID uint64) (*domain.EditionView, error)

	// IsActive reads whether the mint window is open
	IsActive(ctx context.Context, momentID uint64) (bool, error)

	// TotalMinted reads the authoritative cumulative mint count
	TotalMinted(ctx context.Context, momentID uint64) (uint64, error)

	// WaitForConfirmation watches a broadcast transaction until it is mined
	// or the watch deadline expires. An expired deadline yields
	// ConfirmationIndeterminate, never an error: the transaction may still
	// confirm later.
	WaitForConfirmation(ctx context.Context, txHash string) (domain.ConfirmationStatus, error)

	// Close closes the underlying RPC connection
	Close()
}

// Config holds gateway settings
type Config struct {
	// ContractAddress is the deployed editions contract
	ContractAddress string
	// ChainID is the EIP-155 chain id used for signing
	ChainID int64
	// ConfirmationTimeout bounds a WaitForConfirmation watch
	ConfirmationTimeout time.Duration
	// ReceiptPollInterval is the base interval between receipt polls
	ReceiptPollInterval time.Duration
}

type gateway struct {
	config   Config
	client   adapter.EthClient
	signer   adapter.Signer
	clock    adapter.Clock
	contract common.Address
	abi      abi.ABI
}

// NewGateway creates an Ethereum-backed gateway. signer may be nil for
// read-only deployments (API status reads and reconciliation).
func NewGateway(cfg Config, client adapter.EthClient, signer adapter.Signer, clock adapter.Clock) (Gateway, error) {
	parsed, err := abi.JSON(strings.NewReader(editionsABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse editions ABI: %w", err)
	}

	if cfg.ConfirmationTimeout == 0 {
		cfg.ConfirmationTimeout = 2 * time.Minute
	}
	if cfg.ReceiptPollInterval == 0 {
		cfg.ReceiptPollInterval = 3 * time.Second
	}

	return &gateway{
		config:   cfg,
		client:   client,
		signer:   signer,
		clock:    clock,
		contract: common.HexToAddress(cfg.ContractAddress),
		abi:      parsed,
	}, nil
}

// CreateEdition dispatches an edition-creation transaction
func (g *gateway) CreateEdition(ctx context.Context, momentID uint64, params domain.MintParams, revenueSplitTarget string) (string, error) {
	durationSeconds := new(big.Int).SetInt64(int64(params.DurationDays) * 24 * 60 * 60)

	data, err := g.abi.Pack("createEdition",
		new(big.Int).SetUint64(momentID),
		params.MetadataURI,
		params.PriceWei,
		durationSeconds,
		new(big.Int).SetUint64(params.MaxSupply),
		common.HexToAddress(revenueSplitTarget),
		params.Rarity,
	)
	if err != nil {
		return "", fmt.Errorf("failed to pack createEdition: %w", err)
	}

	return g.sendTransaction(ctx, data, nil)
}

// Mint dispatches a mint transaction carrying paymentWei
func (g *gateway) Mint(ctx context.Context, momentID uint64, quantity uint64, paymentWei *big.Int) (string, error) {
	data, err := g.abi.Pack("mint",
		new(big.Int).SetUint64(momentID),
		new(big.Int).SetUint64(quantity),
	)
	if err != nil {
		return "", fmt.Errorf("failed to pack mint: %w", err)
	}

	return g.sendTransaction(ctx, data, paymentWei)
}

// GetEdition reads the authoritative edition state; nil means absent
func (g *gateway) GetEdition(ctx context.Context, momentID uint64) (*domain.EditionView, error) {
	result, err := g.call(ctx, "getEdition", new(big.Int).SetUint64(momentID))
	if err != nil {
		return nil, err
	}

	values, err := g.abi.Unpack("getEdition", result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack getEdition: %w", err)
	}

	exists, ok := values[0].(bool)
	if !ok || !exists {
		return nil, nil
	}

	view := &domain.EditionView{
		MomentID:    momentID,
		MetadataURI: values[1].(string),
		PriceWei:    values[2].(*big.Int),
		StartTime:   time.Unix(int64(values[3].(uint64)), 0).UTC(),
		EndTime:     time.Unix(int64(values[4].(uint64)), 0).UTC(),
		MaxSupply:   values[5].(*big.Int).Uint64(),
		Minted:      values[6].(*big.Int).Uint64(),
		Active:      values[7].(bool),
		Rarity:      values[8].(uint8),
	}
	return view, nil
}

// IsActive reads whether the mint window is open
func (g *gateway) IsActive(ctx context.Context, momentID uint64) (bool, error) {
	result, err := g.call(ctx, "isActive", new(big.Int).SetUint64(momentID))
	if err != nil {
		return false, err
	}

	var active bool
	if err := g.abi.UnpackIntoInterface(&active, "isActive", result); err != nil {
		return false, fmt.Errorf("failed to unpack isActive: %w", err)
	}
	return active, nil
}

// TotalMinted reads the authoritative cumulative mint count
func (g *gateway) TotalMinted(ctx context.Context, momentID uint64) (uint64, error) {
	result, err := g.call(ctx, "totalMinted", new(big.Int).SetUint64(momentID))
	if err != nil {
		return 0, err
	}

	var minted *big.Int
	if err := g.abi.UnpackIntoInterface(&minted, "totalMinted", result); err != nil {
		return 0, fmt.Errorf("failed to unpack totalMinted: %w", err)
	}
	return minted.Uint64(), nil
}

// call packs and executes a read-only contract call
func (g *gateway) call(ctx context.Context, method string, args ...any) ([]byte, error) {
	data, err := g.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	result, err := g.client.CallContract(ctx, ethereum.CallMsg{
		To:   &g.contract,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}
	return result, nil
}

// sendTransaction builds, signs, and broadcasts a state-changing call. Gas
// estimation doubles as a pre-flight revert check: a call the contract would
// reject fails here with the classified rejection reason instead of burning
// gas on a doomed broadcast.
func (g *gateway) sendTransaction(ctx context.Context, data []byte, value *big.Int) (string, error) {
	if g.signer == nil {
		return "", fmt.Errorf("gateway is read-only: no signer configured")
	}

	from := g.signer.Address()
	msg := ethereum.CallMsg{
		From:  from,
		To:    &g.contract,
		Data:  data,
		Value: value,
	}

	gasLimit, err := g.client.EstimateGas(ctx, msg)
	if err != nil {
		return "", classifyRevert(err, "")
	}

	nonce, err := g.client.PendingNonceAt(ctx, from)
	if err != nil {
		return "", fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := g.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to suggest gas price: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &g.contract,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := g.signer.SignTx(ctx, tx, big.NewInt(g.config.ChainID))
	if err != nil {
		// A refused signature is a normal terminal outcome for the attempt
		return "", classifyDecline(err)
	}

	if err := g.client.SendTransaction(ctx, signed); err != nil {
		return "", classifyRevert(err, signed.Hash().Hex())
	}

	return signed.Hash().Hex(), nil
}

// Close closes the underlying RPC connection
func (g *gateway) Close() {
	g.client.Close()
}
