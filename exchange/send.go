package exchange

import "net/http"

// SendRequest performs the exchange. A response with a non-2xx status is
// not an error here; only transport-level failures are.
func SendRequest(client *http.Client, request *http.Request) (*http.Response, error) {
	resp, err := client.Do(request)
	if err != nil {
		return nil, newTransportError("sending HTTP request: %s", err)
	}
	return resp, nil
}
