// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package config

import (
	"github.com/lumachain/Lumachain.LUMA/common/log"
)

const (
	// NodePrefix indicates the prefix of node version.
	NodePrefix = "luma-"
	// ConfigFile for node config
	ConfigFile = "./config.json"
	// DataPath indicates the path storing the chain data.
	DataPath = "data"
	// DataDir storing the chain data.
	DataDir = "lumachain"
	// NodeLogPath indicates the path storing the node log.
	NodeLogPath = "logs/node"
)

// Registered coin symbols.  LUMA is the native coin, LUSD the pegged
// stablecoin; fees are payable in either.
const (
	LUMA = "LUMA"
	LUSD = "LUSD"
)

type Config struct {
	*Configuration `json:"Configuration"`
}

var (
	// DefaultParams defines the default network parameters.
	DefaultParams = Configuration{
		PrintLevel: uint32(log.LevelInfo),
	}

	// Parameters is the active network configuration, set once at
	// startup by the settings loader.
	Parameters *Configuration
)

func SetParameters(configuration *Configuration) {
	Parameters = configuration
}

func GetDefaultParams() *Configuration {
	// DefaultParams defines the default network parameters.
	return &Configuration{
		DataDir:                       DataDir,
		PrintLevel:                    uint32(log.LevelInfo),
		UTXOEnableHeight:              0,
		MaxValidHeightDiff:            250,
		MaxTxMemoSize:                 100,
		MaxUTXOInCount:                100,
		MaxUTXOOutCount:               100,
		MinTxFee:                      100000,
		FeeSymbols:                    []string{LUMA, LUSD},
		EnableUtxoDB:                  true,
		TxCacheVolume:                 100000,
		MaxTxPoolSize:                 20000000,
		MemoryPoolTxMaximumStayHeight: 10,
		MaxTxsInBlock:                 10000,
		GenerateBlockInterval:         10,
		ProducerInfo:                  "lumachain",
		HttpRestPort:                  21334,
		HttpRestStart:                 true,
		HttpWsPort:                    21335,
		HttpWsStart:                   true,
		ProfilePort:                   21336,
		WsHeartbeatInterval:           60,
		EnableCORS:                    false,
		WalletPath:                    "keystore.dat",
	}
}

// TestNet returns the network parameters for the test network.
func (p *Configuration) TestNet() *Configuration {
	p.UTXOEnableHeight = 0
	p.HttpRestPort = 22334
	p.HttpWsPort = 22335
	p.ProfilePort = 22336
	return p
}

// RegNet returns the network parameters for the regression network.
func (p *Configuration) RegNet() *Configuration {
	p.UTXOEnableHeight = 0
	p.MinTxFee = 100
	p.HttpRestPort = 23334
	p.HttpWsPort = 23335
	p.ProfilePort = 23336
	p.AutoGenerateBlocks = true
	p.GenerateBlockInterval = 5
	return p
}

// Configuration defines the configurable parameters to run a Lumachain
// node.
type Configuration struct {
	ActiveNet     string `json:"ActiveNet"`
	DataDir       string `screw:"short;--datadir" usage:"block data and logs storage path default: lumachain"`
	HttpRestPort  int    `screw:"--restport" usage:"port for the http restful server"`
	HttpRestStart bool   `json:"HttpRestStart"`
	HttpWsPort    int    `screw:"--wsport" usage:"port for the http web socket server"`
	HttpWsStart   bool   `json:"HttpWsStart"`
	ProfilePort   uint32 `json:"ProfilePort"`
	// WsHeartbeatInterval is the websocket session check period in
	// seconds; a session idle for two periods is expired.
	WsHeartbeatInterval uint32 `json:"WsHeartbeatInterval"`
	RestCertPath        string `json:"RestCertPath"`
	RestKeyPath         string `json:"RestKeyPath"`
	MaxLogsSize   int64  `json:"MaxLogsSize"`
	MaxPerLogSize int64  `json:"MaxPerLogSize"`
	// PrintLevel defines the level to print log.
	PrintLevel uint32 `screw:"--printlevel" usage:"level to print log"`
	// UTXOEnableHeight defines the height the conditional UTXO
	// transaction type activates; it is rejected below this height.
	UTXOEnableHeight uint32 `screw:"--utxoenableheight" usage:"defines the height the conditional utxo transaction activates"`
	// MaxValidHeightDiff is how far a transaction's valid height may
	// sit from the tip, in both directions, before it is rejected.
	MaxValidHeightDiff uint32 `json:"MaxValidHeightDiff"`
	// MaxTxMemoSize is the maximum memo length in bytes.
	MaxTxMemoSize uint32 `json:"MaxTxMemoSize"`
	// MaxUTXOInCount bounds the number of inputs of one transaction.
	MaxUTXOInCount uint32 `json:"MaxUTXOInCount"`
	// MaxUTXOOutCount bounds the number of outputs of one transaction.
	MaxUTXOOutCount uint32 `json:"MaxUTXOOutCount"`
	// MinTxFee defines the base minimum fee of a transaction, in sawi.
	MinTxFee uint64 `screw:"--mintxfee" usage:"base minimum fee of a transaction in sawi"`
	// FeeSymbols lists the coin symbols fees may be paid in.
	FeeSymbols []string `json:"FeeSymbols"`
	// EnableUtxoDB indicate whether to enable utxo database.
	EnableUtxoDB bool `json:"EnableUtxoDB"`
	// TxCacheVolume defines the default volume of the transaction cache.
	TxCacheVolume uint32 `json:"TxCacheVolume"`
	// MaxTxPoolSize is the byte budget of the memory pool; the lowest
	// paying transactions fall out first once it fills.
	MaxTxPoolSize uint64 `json:"MaxTxPoolSize"`
	// MemoryPoolTxMaximumStayHeight is how many blocks a transaction
	// may wait in the pool before it is flagged for rebroadcast.
	MemoryPoolTxMaximumStayHeight uint32 `json:"MemoryPoolTxMaximumStayHeight"`
	// MaxTxsInBlock bounds the transaction count of a generated block,
	// the coinbase included.
	MaxTxsInBlock uint32 `json:"MaxTxsInBlock"`
	// AutoGenerateBlocks starts the block producer with the node.
	AutoGenerateBlocks bool `screw:"--autogenerate" usage:"produce blocks automatically"`
	// GenerateBlockInterval is the auto producer period in seconds.
	GenerateBlockInterval uint32 `json:"GenerateBlockInterval"`
	// ProducerInfo is the marker the coinbase of a generated block
	// carries.
	ProducerInfo string `json:"ProducerInfo"`
	// Enable cors for http server.
	EnableCORS bool `json:"EnableCORS"`
	// WalletPath defines the default wallet keystore path.
	WalletPath string `screw:"short;--walletpath" usage:"wallet keystore path"`
	// GenesisFunds lists the balances credited when a fresh chain
	// store initializes.
	GenesisFunds []GenesisFund `json:"GenesisFunds"`
}
