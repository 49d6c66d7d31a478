package password

import "github.com/alexedwards/argon2id"

var params = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// Hash produces a salted argon2id digest. The random salt makes the
// output different on every call for the same input.
func Hash(plain string) (string, error) {
	return argon2id.CreateHash(plain, params)
}

// Verify reports whether plain matches the digest. A malformed digest
// is a verification failure, not an error the caller can branch on.
func Verify(plain, digest string) bool {
	ok, err := argon2id.ComparePasswordAndHash(plain, digest)
	if err != nil {
		return false
	}
	return ok
}
