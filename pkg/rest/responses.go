package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apierr "github.com/plmio/go-3dx-api-types/errors"
	"github.com/plmio/go-3dx/pkg/errs"
)

type StatusCodeRange int

func (sc StatusCodeRange) String() string {
	switch sc {
	case Status1xx:
		return "informational response"
	case Status2xx:
		return "success"
	case Status3xx:
		return "redirect"
	case Status4xx:
		return "client error"
	case Status5xx:
		return "server error"
	default:
		return fmt.Sprintf("unknown (%d)", sc)
	}
}

func StatusCodeRangeOf(resp *http.Response) StatusCodeRange {
	sc := resp.StatusCode
	if sc < 200 {
		return Status1xx
	}
	if sc < 300 {
		return Status2xx
	}
	if sc < 400 {
		return Status3xx
	}
	if sc < 500 {
		return Status4xx
	}
	if sc < 600 {
		return Status5xx
	}
	return StatusUnknown
}

const (
	StatusUnknown StatusCodeRange = iota
	Status1xx
	Status2xx
	Status3xx
	Status4xx
	Status5xx
)

// MessageFor maps a status code range to the error summary used when the
// server responds in that range.
type MessageFor map[StatusCodeRange]string

// UnmarshalJSONResponse decodes a JSON response body into v.
//
// On a 2xx status the body is decoded into v. On any other status an error
// is returned, summarized per messageFor and carrying the server payload as
// detail.
func UnmarshalJSONResponse[T any](resp *http.Response, v *T, messageFor MessageFor) error {
	scr := StatusCodeRangeOf(resp)
	if scr <= Status2xx {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return errs.New(
				fmt.Sprintf("unexpected error: %s (status code = %d)", err.Error(), resp.StatusCode),
				errs.WithCause(err),
			)
		}
		return nil
	}

	return errorFromResponse(resp, scr, messageFor)
}

// DiscardResponse drains the response body and reports an error for
// non-success statuses, as UnmarshalJSONResponse does.
func DiscardResponse(resp *http.Response, messageFor MessageFor) error {
	scr := StatusCodeRangeOf(resp)
	if scr <= Status2xx {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	return errorFromResponse(resp, scr, messageFor)
}

func errorFromResponse(resp *http.Response, scr StatusCodeRange, messageFor MessageFor) error {
	message, ok := messageFor[scr]
	if !ok {
		message = scr.String()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.New(
			fmt.Sprintf("%s\ncannot read server message: %s", message, err.Error()),
			errs.WithCause(err),
		)
	}

	return errs.New(message, errs.WithDetail(parseErrorMessage(body)))
}

func jsonUnmarshal[T any](buf []byte) (*T, error) {
	ret := new(T)
	if err := json.Unmarshal(buf, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func parseErrorMessage(body []byte) string {
	if eresp, err := jsonUnmarshal[apierr.ErrorMessage](body); err == nil {
		if detail, err := json.MarshalIndent(eresp, "", "    "); err == nil {
			return string(detail)
		}
	}

	if msg, err := jsonUnmarshal[struct {
		Message *string `json:"message"`
	}](body); err == nil && msg.Message != nil {
		if detail, err := json.MarshalIndent(msg, "", "    "); err == nil {
			return string(detail)
		}
	}

	return string(body)
}
