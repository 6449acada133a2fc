package utils

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	ReqIDHeaderField = "REQ_ID"

	PathVarFormat = "{%s}"
)

func BuildRequest(method, host, path string, body interface{}) *http.Request {
	hostURL := url.URL{
		Scheme: "http",
		Host:   host,
		Path:   path,
	}

	var bodyBuffer *bytes.Buffer

	if body != nil {
		jsonStr, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}

		bodyBuffer = bytes.NewBuffer(jsonStr)
	} else {
		bodyBuffer = new(bytes.Buffer)
	}

	request, err := http.NewRequestWithContext(context.Background(), method, hostURL.String(), bodyBuffer)
	if err != nil {
		panic(err)
	}

	request.Header.Set("Content-Type", "application/json")

	return request
}

func DoRequest(httpClient *http.Client, request *http.Request, responseBody interface{}) (status int) {
	log.Debugf("doing request: %s %s", request.Method, request.URL.String())

	if httpClient == nil {
		panic("httpclient is nil")
	}

	reqID, err := uuid.NewUUID()
	if err != nil {
		panic(err)
	}

	request.Header.Add(ReqIDHeaderField, reqID.String())

	resp, err := httpClient.Do(request)
	if err != nil {
		log.Warn(err)

		return -1
	}

	if responseBody != nil {
		err = json.NewDecoder(resp.Body).Decode(responseBody)
		if err != nil {
			log.Warn(err)
		}
	}

	err = resp.Body.Close()
	if err != nil {
		panic(err)
	}

	return resp.StatusCode
}

func ExtractPathVar(r *http.Request, varName string) (varValue string) {
	vars := mux.Vars(r)

	var ok bool
	varValue, ok = vars[varName]

	if !ok {
		err := errors.Errorf("var %s was not in request path", varName)
		panic(err)
	}

	return
}
