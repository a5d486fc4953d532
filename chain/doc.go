// Package chain is a small hash-linked block list used to show
// how an IKH digest detects tampering. Every block stores the
// digest of its data concatenated with the previous block's
// hash; editing a block's data without rehashing breaks it and
// every block after it.
//
// Chains persist through a Store. FileStore keeps the blocks in
// a JSON, YAML or CBOR document and SQLiteStore keeps them in a
// single table.
package chain
