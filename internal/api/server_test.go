package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sha512 "github.com/Giulio2002/reference_sha512"
	"github.com/Giulio2002/reference_sha512/internal/utils"
	"github.com/klauspost/compress/gzip"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const abcDigest = "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"

type decodedResponse struct {
	Message    string   `json:"message"`
	Hash       string   `json:"hash"`
	PaddedBits string   `json:"paddedBits"`
	Letters    []Letter `json:"letters"`
	Error      string   `json:"error"`
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, decodedResponse) {
	req := httptest.NewRequest(http.MethodPost, "/api/hash", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp decodedResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, utils.UnmarshalJSON(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestHashEndpoint(t *testing.T) {
	spec.Run(t, "POST /api/hash", func(t *testing.T, when spec.G, it spec.S) {
		var (
			server  *Server
			handler http.Handler
		)

		it.Before(func() {
			server = NewServer(DefaultConfig())
			handler = server.Handler()
		})

		it("hashes the message", func() {
			rec, resp := post(t, handler, `{"message":"abc"}`)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, "abc", resp.Message)
			assert.Equal(t, abcDigest, resp.Hash)
		})

		it("returns the padded bit string", func() {
			_, resp := post(t, handler, `{"message":"abc"}`)

			require.Len(t, resp.PaddedBits, 1024)
			assert.Equal(t, "011000010110001001100011"+"10000000", resp.PaddedBits[:32])
			// length field: 24 bits
			assert.Equal(t, "00011000", resp.PaddedBits[1016:])
			assert.Equal(t, strings.Repeat("0", 1016-32), resp.PaddedBits[32:1016])
		})

		it("returns per character bits", func() {
			_, resp := post(t, handler, `{"message":"aé"}`)

			assert.Equal(t, []Letter{
				{Char: "a", Bits: "01100001"},
				{Char: "é", Bits: "11101001"},
			}, resp.Letters)
			assert.Equal(t, sha512.Hex([]byte("aé")), resp.Hash)
		})

		when("the message is missing", func() {
			it("hashes the empty string", func() {
				rec, resp := post(t, handler, `{}`)

				require.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, sha512.Hex(nil), resp.Hash)
				assert.Empty(t, resp.Letters)
				assert.Len(t, resp.PaddedBits, 1024)
			})

			it("accepts an empty body", func() {
				rec, resp := post(t, handler, "")

				require.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, sha512.Hex(nil), resp.Hash)
			})
		})

		when("the input is not a string", func() {
			it("rejects a number", func() {
				rec, resp := post(t, handler, `{"message":42}`)

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, resp.Error, "invalid input")
			})

			it("rejects null", func() {
				rec, resp := post(t, handler, `{"message":null}`)

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, resp.Error, "message must be a JSON string")
			})

			it("rejects a non-object body", func() {
				rec, resp := post(t, handler, `["abc"]`)

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, resp.Error, "invalid input")
			})

			it("rejects malformed json", func() {
				rec, resp := post(t, handler, `{"message":`)

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, resp.Error, "invalid input")
			})
		})

		it("rejects oversized bodies", func() {
			cfg := DefaultConfig()
			cfg.MaxBodyBytes = 16
			rec, _ := post(t, NewServer(cfg).Handler(), `{"message":"this is far too long"}`)

			assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		})

		it("rejects other methods", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/hash", nil))

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Allow"))
		})

		it("answers CORS preflight", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/hash", nil))

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
		})

		it("caches short messages", func() {
			_, first := post(t, handler, `{"message":"cached"}`)
			require.NotNil(t, server.cache.Get("cached"))

			_, second := post(t, handler, `{"message":"cached"}`)
			assert.Equal(t, first, second)
		})

		it("does not cache long messages", func() {
			long := strings.Repeat("z", DefaultConfig().CacheMaxMessage+1)
			rec, _ := post(t, handler, `{"message":"`+long+`"}`)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Nil(t, server.cache.Get(long))
		})

		it("compresses large responses", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/hash", strings.NewReader(`{"message":"`+strings.Repeat("q", 2000)+`"}`))
			req.Header.Set("Accept-Encoding", "gzip")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

			zr, err := gzip.NewReader(rec.Body)
			require.NoError(t, err)
			raw, err := io.ReadAll(zr)
			require.NoError(t, err)

			var resp decodedResponse
			require.NoError(t, utils.UnmarshalJSON(raw, &resp))
			assert.Equal(t, sha512.Hex([]byte(strings.Repeat("q", 2000))), resp.Hash)
		})
	}, spec.Report(report.Terminal{}), spec.Parallel(), spec.Random())
}

func TestBitHelpers(t *testing.T) {
	spec.Run(t, "BitString", func(t *testing.T, when spec.G, it spec.S) {
		it("renders bytes most significant bit first", func() {
			assert.Equal(t, "000000011000000011111111", BitString([]byte{0x01, 0x80, 0xff}))
		})

		it("renders nothing for an empty buffer", func() {
			assert.Equal(t, "", BitString(nil))
		})
	}, spec.Report(report.Log{}))

	spec.Run(t, "Letters", func(t *testing.T, when spec.G, it spec.S) {
		it("keeps wide code points longer than a byte", func() {
			letters := Letters("€")
			require.Len(t, letters, 1)
			assert.Equal(t, "10000010101100", letters[0].Bits)
		})

		it("drops repeated characters in order", func() {
			assert.Equal(t, []Letter{
				{Char: "a", Bits: "01100001"},
				{Char: "b", Bits: "01100010"},
			}, UniqueLetters(Letters("abab")))
		})
	}, spec.Report(report.Log{}))
}

func TestInputError(t *testing.T) {
	err := &InputError{Reason: "bad", Err: io.ErrUnexpectedEOF}
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, "invalid input: bad: unexpected EOF", err.Error())
	assert.Equal(t, "invalid input: bad", (&InputError{Reason: "bad"}).Error())
}
