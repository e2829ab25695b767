// Package password hashes and verifies user passwords with Argon2id.
//
// Hashes are serialized in PHC string format
// ($argon2id$v=19$m=...,t=...,p=...$salt$digest) so parameters travel with
// the hash and can be strengthened later without invalidating stored
// credentials. Verification recomputes the digest with the parameters
// embedded in the stored hash and compares in constant time.
//
// Password strength policy is out of scope; callers delegate to an
// external checker before hashing.
package password
