package common

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Struct Definition
type KeySigner struct {
	ethAddress common.Address
	ethPrivKey *ecdsa.PrivateKey
}

var _ Signer = &KeySigner{}

// Constructor Function
func NewKeySigner(privateKey string) (*KeySigner, error) {

	ethPrivKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ethereum private key: %w", err)
	}

	publicKeyECDSA, _ := ethPrivKey.Public().(*ecdsa.PublicKey) // impossible to get an error since the private key is not nil

	ethAddress := crypto.PubkeyToAddress(*publicKeyECDSA)

	return &KeySigner{
		ethPrivKey: ethPrivKey,
		ethAddress: ethAddress,
	}, nil
}

// Destructor Function
func (s *KeySigner) Destroy() {
	// nothing to do
}

// Method Implementations
func (s *KeySigner) EthSign(data []byte) ([]byte, error) {
	digest := data
	if len(digest) != 32 {
		digest = crypto.Keccak256(data)
	}
	hash := common.BytesToHash(digest)
	signature, err := crypto.Sign(hash[:], s.ethPrivKey)
	if err != nil {
		return nil, err
	}

	if signature[64] == 0 || signature[64] == 1 {
		signature[64] += 27
	}

	return signature, nil
}

func (s *KeySigner) EthAddress() common.Address {
	return s.ethAddress
}

// NewEthereumSigner picks a signer backend based on which credential is
// configured, preferring a raw private key, then a mnemonic, then GCP KMS.
func NewEthereumSigner(privateKey string, mnemonic string, gcpKmsKeyName string) (Signer, error) {
	if privateKey != "" {
		return NewKeySigner(privateKey)
	}
	if mnemonic != "" {
		return NewMnemonicSigner(mnemonic)
	}
	if gcpKmsKeyName != "" {
		return NewGcpKmsSigner(gcpKmsKeyName)
	}
	return nil, fmt.Errorf("no signer configured")
}
