package services

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"trading-admin-service/pkg/common"
)

// MyPayVerseService is the client for the custodial wallet provider. The
// provider is inconsistent about where it nests payloads and how it names
// fields (including the "transacionType" misspelling), so every response is
// normalized here and the rest of the codebase only ever sees the
// ProviderWallet / ProviderTransaction / WithdrawalReceipt shapes.
type MyPayVerseService struct {
	BaseUrl    string
	CustomerId string
}

func NewMyPayVerseService() *MyPayVerseService {
	baseUrl := os.Getenv("MYPAYVERSE_BASE_URL")
	if baseUrl == "" {
		baseUrl = "https://api.mypayverse.xyz"
	}
	return &MyPayVerseService{
		BaseUrl:    baseUrl,
		CustomerId: os.Getenv("MYPAYVERSE_CUSTOMER_ID"),
	}
}

// Configured reports whether the provider credentials are present. Handlers
// turn a false into a 500 "payment service not configured".
func (s *MyPayVerseService) Configured() bool {
	return s.CustomerId != ""
}

// UpstreamError carries the provider's own message through to the caller.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

type ProviderWallet struct {
	Address string
	Raw     map[string]interface{}
}

type ProviderTransaction struct {
	Id            string
	TransactionId string
	Type          string
	Status        string
	Amount        float64
	CreatedAt     string
}

// ExternalId derives the dedupe key for a transaction: the provider id when
// present, else the secondary transactionId, else a createdAt_amount
// composite. The composite is a heuristic carried over from the legacy
// response shape and can collide for two same-amount deposits in the same
// second.
func (t ProviderTransaction) ExternalId() string {
	if t.Id != "" {
		return t.Id
	}
	if t.TransactionId != "" {
		return t.TransactionId
	}
	return t.CreatedAt + "_" + strconv.FormatFloat(t.Amount, 'f', -1, 64)
}

func (t ProviderTransaction) IsCompletedDeposit() bool {
	return t.Type == "DEPOSIT" && t.Status == "COMPLETED"
}

type WithdrawalReceipt struct {
	TransactionHash string
	Raw             map[string]interface{}
}

// CreateWallet provisions a provider wallet for the user.
func (s *MyPayVerseService) CreateWallet(userId string) (*ProviderWallet, error) {
	payload := map[string]interface{}{
		"userId":     userId,
		"customerId": s.CustomerId,
	}

	res, err := common.PostJSON(fmt.Sprintf("%s/api/v1/customers/wallet", s.BaseUrl), payload, nil)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, s.upstreamError(res, "Failed to create wallet")
	}

	return parseWallet(res.Body), nil
}

// GetWallet fetches the user's provider wallet. A provider 404 means the
// user has no wallet yet and returns (nil, nil).
func (s *MyPayVerseService) GetWallet(userId string) (*ProviderWallet, error) {
	url := fmt.Sprintf("%s/api/v1/customers/wallet/details?userId=%s&customerId=%s", s.BaseUrl, userId, s.CustomerId)

	res, err := common.GetJSON(url, nil)
	if err != nil {
		return nil, err
	}
	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if !res.OK() {
		return nil, s.upstreamError(res, "Failed to get wallet")
	}

	return parseWallet(res.Body), nil
}

// GetTransactions lists the wallet's externally reported transactions.
func (s *MyPayVerseService) GetTransactions(walletAddress string) ([]ProviderTransaction, error) {
	url := fmt.Sprintf("%s/api/v1/customers/wallet/transactions?walletAddress=%s&customerId=%s", s.BaseUrl, walletAddress, s.CustomerId)

	res, err := common.GetJSON(url, nil)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, s.upstreamError(res, "Failed to get transactions")
	}

	return parseTransactions(res.Body), nil
}

// WithdrawAsset instructs the provider to transfer amount to walletAddress.
// Only a 2xx with a parseable body counts as success; the receipt's hash may
// still be empty since some provider responses omit it.
func (s *MyPayVerseService) WithdrawAsset(userId string, amount float64, walletAddress string) (*WithdrawalReceipt, error) {
	payload := map[string]interface{}{
		"userId":        userId,
		"customerId":    s.CustomerId,
		"amount":        amount,
		"walletAddress": walletAddress,
	}

	res, err := common.PostJSON(fmt.Sprintf("%s/api/v1/assetsTransaction/WithdrawAsset", s.BaseUrl), payload, nil)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, s.upstreamError(res, "MyPayVerse withdrawal failed")
	}
	if res.Body == nil {
		return nil, &UpstreamError{StatusCode: http.StatusInternalServerError, Message: "Invalid response from payment service"}
	}

	return &WithdrawalReceipt{
		TransactionHash: extractTxHash(res.Body),
		Raw:             res.Body,
	}, nil
}

func (s *MyPayVerseService) upstreamError(res *common.HTTPResult, fallback string) error {
	message := fallback
	if res.Body != nil {
		if m := asString(res.Body["message"]); m != "" {
			message = m
		} else if m := asString(res.Body["responseMessage"]); m != "" {
			message = m
		}
	}
	return &UpstreamError{StatusCode: res.StatusCode, Message: message}
}

// parseWallet probes result.wallet then data for the wallet object, and the
// three observed spellings of the address field.
func parseWallet(body map[string]interface{}) *ProviderWallet {
	if body == nil {
		return nil
	}

	var walletMap map[string]interface{}
	if result := asMap(body["result"]); result != nil {
		walletMap = asMap(result["wallet"])
	}
	if walletMap == nil {
		walletMap = asMap(body["data"])
	}
	if walletMap == nil {
		return nil
	}

	address := asString(walletMap["walletAddress"])
	if address == "" {
		address = asString(walletMap["wallet_address"])
	}
	if address == "" {
		address = asString(walletMap["address"])
	}

	return &ProviderWallet{Address: address, Raw: walletMap}
}

// parseTransactions probes result.transactions, then result itself, then
// data for the transaction array.
func parseTransactions(body map[string]interface{}) []ProviderTransaction {
	if body == nil {
		return nil
	}

	var entries []interface{}
	if result, ok := body["result"].(map[string]interface{}); ok {
		entries, _ = result["transactions"].([]interface{})
	}
	if entries == nil {
		entries, _ = body["result"].([]interface{})
	}
	if entries == nil {
		entries, _ = body["data"].([]interface{})
	}

	transactions := make([]ProviderTransaction, 0, len(entries))
	for _, entry := range entries {
		item := asMap(entry)
		if item == nil {
			continue
		}

		id := asString(item["_id"])
		if id == "" {
			id = asString(item["id"])
		}

		transactions = append(transactions, ProviderTransaction{
			Id:            id,
			TransactionId: asString(item["transactionId"]),
			Type:          asString(item["transacionType"]),
			Status:        asString(item["transacionStatus"]),
			Amount:        asFloat(item["amount"]),
			CreatedAt:     asString(item["createdAt"]),
		})
	}
	return transactions
}

// extractTxHash checks the locations the provider has been observed to put
// the transaction hash in.
func extractTxHash(body map[string]interface{}) string {
	candidates := []map[string]interface{}{asMap(body["data"]), body, asMap(body["result"])}
	for _, m := range candidates {
		if m == nil {
			continue
		}
		for _, key := range []string{"transactionHash", "txHash", "hash"} {
			if hash := asString(m[key]); hash != "" {
				return hash
			}
		}
	}
	return ""
}

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	case int:
		return float64(n)
	}
	return 0
}
