package app

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/coin"
	"github.com/wagatoken/wagachain/commands"
	"github.com/wagatoken/wagachain/crypto"
	"github.com/wagatoken/wagachain/x/cash"
	"github.com/wagatoken/wagachain/x/grant"
	"github.com/wagatoken/wagachain/x/sigs"
)

// we fix the private keys here for deterministic output with the same encoding
// these are not secure at all, but the only point is to check the format,
// which is easier when everything is reproduceable.
var (
	source      = makePrivKey("1234567890")
	beneficiary = makePrivKey("F00BA411").PublicKey().Address()
)

// makePrivKey repeats the string as long as needed to get 64 digits, then
// parses it as hex. It uses this repeated string as a "random" seed
// for the private key.
//
// nothing random about it, but at least it gives us variety
func makePrivKey(seed string) *crypto.PrivateKey {
	rep := 64/len(seed) + 1
	in := strings.Repeat(seed, rep)[:64]
	bin, err := hex.DecodeString(in)
	if err != nil {
		panic(err)
	}
	return crypto.PrivKeyEd25519FromSeed(bin)
}

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	wallet := &cash.Set{
		Metadata: &wagachain.Metadata{Schema: 1},
		Coins: []*coin.Coin{
			{Whole: 50000, Ticker: "WAGA"},
		},
	}

	waga := &coin.Coin{Whole: 50000, Fractional: 12345, Ticker: "WAGA"}

	pub := source.PublicKey()
	addr := pub.Address()
	user := &sigs.UserData{
		Metadata: &wagachain.Metadata{Schema: 1},
		Pubkey:   pub,
		Sequence: 17,
	}

	amount := coin.NewCoin(100000, 0, "WAGA")
	createMsg := &grant.CreateMsg{
		Metadata:        &wagachain.Metadata{Schema: 1},
		Beneficiary:     beneficiary,
		Amount:          &amount,
		RevenueShareBps: 2000,
		DurationYears:   5,
		Purpose:         "Washing station refurbishment",
	}

	scheduleMsg := &grant.CreateScheduleMsg{
		Metadata:     &wagachain.Metadata{Schema: 1},
		GrantID:      []byte{0, 0, 0, 0, 0, 0, 0, 1},
		Descriptions: []string{"Foundation", "Equipment", "Commissioning"},
		Shares:       []uint32{4000, 4000, 2000},
	}

	record := &grant.Grant{
		Metadata:        &wagachain.Metadata{Schema: 1},
		Beneficiary:     beneficiary,
		Amount:          &amount,
		RevenueShareBps: 2000,
		Status:          grant.GrantStatusPending,
		Purpose:         "Washing station refurbishment",
	}

	unsigned, err := NewTx(createMsg, nil)
	if err != nil {
		panic(err)
	}
	tx := *unsigned
	sig, err := sigs.SignTx(source, &tx, "test-123", 17)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}

	fmt.Printf("Address: %s\n", addr)
	return []commands.Example{
		{Filename: "wallet", Obj: wallet},
		{Filename: "coin", Obj: waga},
		{Filename: "priv_key", Obj: source},
		{Filename: "pub_key", Obj: pub},
		{Filename: "user", Obj: user},
		{Filename: "grant_create_msg", Obj: createMsg},
		{Filename: "grant_create_schedule_msg", Obj: scheduleMsg},
		{Filename: "grant", Obj: record},
		{Filename: "unsigned_tx", Obj: unsigned},
		{Filename: "signed_tx", Obj: &tx},
	}
}
