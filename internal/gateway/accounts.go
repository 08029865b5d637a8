// Copyright © 2025 Kakarot Labs
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gateway

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	secp256k1 "github.com/btcsuite/btcd/btcec/v2"
	"github.com/hyperledger/firefly-signer/pkg/keystorev3"
	signer "github.com/hyperledger/firefly-signer/pkg/secp256k1"
	"github.com/kkrt-labs/kstack/pkg/types"
	"golang.org/x/crypto/sha3"
)

func GenerateAddressAndPrivateKey() (address string, privateKey string, err error) {
	newPrivateKey, err := secp256k1.NewPrivateKey()
	if err != nil {
		return "", "", err
	}
	privateKeyBytes := newPrivateKey.Serialize()
	encodedPrivateKey := "0x" + hex.EncodeToString(privateKeyBytes)
	// Drop the 04 prefix of the uncompressed public key
	publicKeyBytes := newPrivateKey.PubKey().SerializeUncompressed()[1:]
	hash := sha3.NewLegacyKeccak256()
	hash.Write(publicKeyBytes)
	// Ethereum addresses are the lower 20 bytes of the hash
	encodedAddress := "0x" + hex.EncodeToString(hash.Sum(nil)[12:32])

	return encodedAddress, encodedPrivateKey, nil
}

// CreateAccount generates a new EVM account. When password is set the key is
// also written as a keystore v3 wallet file in outputDirectory.
func CreateAccount(outputDirectory, password string) (*types.EVMAccount, error) {
	address, privateKey, err := GenerateAddressAndPrivateKey()
	if err != nil {
		return nil, err
	}
	account := &types.EVMAccount{
		Address:    address,
		PrivateKey: privateKey,
	}
	if password == "" {
		return account, nil
	}
	account.WalletFile, err = writeWalletFile(outputDirectory, privateKey, password)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func writeWalletFile(outputDirectory, privateKey, password string) (string, error) {
	keyBytes, err := hex.DecodeString(privateKey[2:])
	if err != nil {
		return "", err
	}
	keyPair, err := signer.NewSecp256k1KeyPair(keyBytes)
	if err != nil {
		return "", err
	}
	wallet := keystorev3.NewWalletFileStandard(password, keyPair)
	if err := os.MkdirAll(outputDirectory, 0755); err != nil {
		return "", err
	}
	filename := filepath.Join(outputDirectory, fmt.Sprintf("%s.json", keyPair.Address.String()[2:]))
	if err := os.WriteFile(filename, wallet.JSON(), 0600); err != nil {
		return "", err
	}
	return filename, nil
}
