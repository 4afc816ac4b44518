package credential

import "golang.org/x/crypto/bcrypt"

// BcryptCodec is the salted, cost-parameterized scheme. Hashes are not
// deterministic; Verify is the only valid comparison.
type BcryptCodec struct{}

func (BcryptCodec) Hash(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BcryptCodec) Verify(secret, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(secret)) == nil
}
