package requestgen

import (
	"strconv"
	"strings"

	"github.com/indigo-web/h1stream/kv"
)

// Headers returns n headers with long names and values, the last one being Host.
func Headers(n int) *kv.Storage {
	hdrs := kv.NewPrealloc(n)

	for i := 0; i < n-1; i++ {
		hdrs.Add("Some-Random-Header-Name-Nobody-Cares-About"+strconv.Itoa(i), strings.Repeat("b", 100))
	}

	return hdrs.Add("Host", "localhost")
}

func HeadersBlock(hdrs *kv.Storage) (buff []byte) {
	for key, value := range hdrs.Pairs() {
		buff = append(buff, key+": "+value+"\r\n"...)
	}

	return buff
}

// Generate returns a GET request with the given path and headers.
func Generate(uri string, hdrs *kv.Storage) (request []byte) {
	request = append(request, "GET /"+uri+" HTTP/1.1\r\n"...)
	request = append(request, HeadersBlock(hdrs)...)

	return append(request, '\r', '\n')
}

// GenerateResponse returns a 200 OK response with the given headers and body. Content-Length
// is added automatically.
func GenerateResponse(hdrs *kv.Storage, body string) (response []byte) {
	response = append(response, "HTTP/1.1 200 OK\r\n"...)
	response = append(response, HeadersBlock(hdrs)...)
	response = append(response, "Content-Length: "+strconv.Itoa(len(body))+"\r\n\r\n"...)

	return append(response, body...)
}
