package agora

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAppID = "970CA35de60c44645bbae8a215061b33"
	testCert  = "5CFd2fd1755d40ecb72977518be15d3b"
)

// decodedToken is the 006 layout: signature, channel and uid checksums and
// the signed message of salt, issue ts and privileges.
type decodedToken struct {
	signature  []byte
	crcChannel uint32
	crcUID     uint32
	salt       uint32
	ts         uint32
	privileges map[uint16]uint32
	message    []byte
}

func readBytes(t *testing.T, r *bytes.Reader) []byte {
	t.Helper()
	var n uint16
	require.NoError(t, binary.Read(r, binary.LittleEndian, &n))
	b := make([]byte, n)
	_, err := r.Read(b)
	require.NoError(t, err)
	return b
}

func decode(t *testing.T, token, appID string) decodedToken {
	t.Helper()
	require.True(t, strings.HasPrefix(token, "006"+appID))

	content, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(token, "006"+appID))
	require.NoError(t, err)

	var d decodedToken
	r := bytes.NewReader(content)
	d.signature = readBytes(t, r)
	require.NoError(t, binary.Read(r, binary.LittleEndian, &d.crcChannel))
	require.NoError(t, binary.Read(r, binary.LittleEndian, &d.crcUID))
	d.message = readBytes(t, r)

	m := bytes.NewReader(d.message)
	require.NoError(t, binary.Read(m, binary.LittleEndian, &d.salt))
	require.NoError(t, binary.Read(m, binary.LittleEndian, &d.ts))
	var count uint16
	require.NoError(t, binary.Read(m, binary.LittleEndian, &count))
	d.privileges = make(map[uint16]uint32, count)
	for i := 0; i < int(count); i++ {
		var key uint16
		var value uint32
		require.NoError(t, binary.Read(m, binary.LittleEndian, &key))
		require.NoError(t, binary.Read(m, binary.LittleEndian, &value))
		d.privileges[key] = value
	}
	return d
}

func TestBuildWithUIDPublisher(t *testing.T) {
	expire := uint32(time.Now().Unix() + 3600)

	token, err := NewTokenBuilder().BuildWithUID(testAppID, testCert, "call_room_global", 2882341273, RolePublisher, expire)
	require.NoError(t, err)

	d := decode(t, token, testAppID)
	assert.Equal(t, map[uint16]uint32{1: expire, 2: expire, 3: expire, 4: expire}, d.privileges)
	assert.Equal(t, crc32.ChecksumIEEE([]byte("call_room_global")), d.crcChannel)
	assert.Equal(t, crc32.ChecksumIEEE([]byte("2882341273")), d.crcUID)
	assert.InDelta(t, time.Now().Add(24*time.Hour).Unix(), int64(d.ts), 60)

	mac := hmac.New(sha256.New, []byte(testCert))
	mac.Write([]byte(testAppID + "call_room_global" + "2882341273"))
	mac.Write(d.message)
	assert.True(t, hmac.Equal(mac.Sum(nil), d.signature))
}

func TestBuildWithUIDSubscriberOnlyJoins(t *testing.T) {
	expire := uint32(time.Now().Unix() + 60)

	token, err := NewTokenBuilder().BuildWithUID(testAppID, testCert, "room", 0, RoleSubscriber, expire)
	require.NoError(t, err)

	d := decode(t, token, testAppID)
	assert.Equal(t, map[uint16]uint32{1: expire}, d.privileges)
	assert.Equal(t, crc32.ChecksumIEEE(nil), d.crcUID)

	mac := hmac.New(sha256.New, []byte(testCert))
	mac.Write([]byte(testAppID + "room"))
	mac.Write(d.message)
	assert.True(t, hmac.Equal(mac.Sum(nil), d.signature))
}

func TestBuildWithUIDSignsWithCertificate(t *testing.T) {
	token, err := NewTokenBuilder().BuildWithUID(testAppID, "0123456789abcdef0123456789abcdef", "room", 1, RolePublisher, 100)
	require.NoError(t, err)

	d := decode(t, token, testAppID)
	mac := hmac.New(sha256.New, []byte(testCert))
	mac.Write([]byte(testAppID + "room" + "1"))
	mac.Write(d.message)
	assert.False(t, hmac.Equal(mac.Sum(nil), d.signature))
}

func TestBuildWithUIDRequiresCredentials(t *testing.T) {
	_, err := NewTokenBuilder().BuildWithUID("", testCert, "room", 0, RolePublisher, 100)
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = NewTokenBuilder().BuildWithUID(testAppID, "", "room", 0, RolePublisher, 100)
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleSubscriber, ParseRole("subscriber"))
	assert.Equal(t, RolePublisher, ParseRole("publisher"))
	assert.Equal(t, RolePublisher, ParseRole(""))
	assert.Equal(t, RolePublisher, ParseRole("admin"))
}
