package hmac_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/flyhash/hashkit/core"
	"github.com/flyhash/hashkit/crypto/md5"
	"github.com/flyhash/hashkit/crypto/sha1"
	"github.com/flyhash/hashkit/crypto/sha256"
	"github.com/flyhash/hashkit/hasher"
	"github.com/flyhash/hashkit/hmac"
)

func mac(newCore func() core.Core, key, msg []byte) string {
	h := hmac.New(newCore, key)
	defer h.Close()
	_ = h.Write(msg)
	d, err := h.Sum()
	if err != nil {
		panic(err)
	}
	return hex.EncodeToString(d)
}

// RFC 2104 test case 1.
func TestHMACMD5RFC2104Case1(t *testing.T) {
	key := bytes.Repeat([]byte{0x0b}, 16)
	want := "9294727a3638bb1c13f48ef8158bfc9d"
	if got := mac(md5.New, key, []byte("Hi There")); got != want {
		t.Errorf("HMAC-MD5 = %s, want %s", got, want)
	}
}

// RFC 2202 test case 1.
func TestHMACSHA1RFC2202Case1(t *testing.T) {
	key := bytes.Repeat([]byte{0x0b}, 20)
	want := "b617318655057264e28bc0b6fb378c8ef146be00"
	if got := mac(sha1.New, key, []byte("Hi There")); got != want {
		t.Errorf("HMAC-SHA1 = %s, want %s", got, want)
	}
}

// RFC 4231 test case 1.
func TestHMACSHA256RFC4231Case1(t *testing.T) {
	key := bytes.Repeat([]byte{0x0b}, 20)
	want := "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7"
	newCore := func() core.Core { return sha256.New256() }
	if got := mac(newCore, key, []byte("Hi There")); got != want {
		t.Errorf("HMAC-SHA256 = %s, want %s", got, want)
	}
}

func TestHMACEmptyKeyAndMessage(t *testing.T) {
	want := "b613679a0814d9ec772f95d778c35fc5ff1697c493715653c6c712144292c5ad"
	newCore := func() core.Core { return sha256.New256() }
	if got := mac(newCore, nil, nil); got != want {
		t.Errorf("HMAC-SHA256('', '') = %s, want %s", got, want)
	}
}

// RFC 2104 §2: keys longer than the block size are themselves hashed first.
func TestKeyLongerThanBlockSizeIsHashed(t *testing.T) {
	longKey := bytes.Repeat([]byte{0xaa}, sha1.BlockSize+1)

	direct := mac(sha1.New, longKey, []byte("msg"))

	h := hasher.New(sha1.New())
	_ = h.Update(longKey)
	hashedKey, err := h.Digest()
	if err != nil {
		t.Fatal(err)
	}
	viaHashedKey := mac(sha1.New, hashedKey, []byte("msg"))
	if direct != viaHashedKey {
		t.Fatal("HMAC over an over-length key should equal HMAC over SHA1(key)")
	}
}

func TestInitAvoidsReDerivingKeyPads(t *testing.T) {
	newCore := func() core.Core { return sha256.New256() }
	h := hmac.New(newCore, []byte("shared key"))
	defer h.Close()

	_ = h.Write([]byte("first message"))
	first, err := h.Sum()
	if err != nil {
		t.Fatal(err)
	}

	h.Init()
	_ = h.Write([]byte("first message"))
	second, err := h.Sum()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("HMAC over the same message after Init differed: %x vs %x", first, second)
	}
}

func TestDifferentMessagesProduceDifferentMACs(t *testing.T) {
	newCore := func() core.Core { return sha256.New256() }
	h := hmac.New(newCore, []byte("shared key"))
	defer h.Close()

	h.Init()
	_ = h.Write([]byte("message one"))
	a, _ := h.Sum()

	h.Init()
	_ = h.Write([]byte("message two"))
	b, _ := h.Sum()

	if bytes.Equal(a, b) {
		t.Fatal("different messages under the same key produced the same MAC")
	}
}
