// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package httprestful

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"io/ioutil"
	"net"
	"net/http"
	"strconv"

	"github.com/lumachain/Lumachain.LUMA/common/config"
	"github.com/lumachain/Lumachain.LUMA/common/log"
	lumaerr "github.com/lumachain/Lumachain.LUMA/errors"
	"github.com/lumachain/Lumachain.LUMA/mempool"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

const (
	Api_GetNodeState       = "/api/v1/node/state"
	Api_GetTransaction     = "/api/v1/transaction/:hash"
	Api_GetReceipts        = "/api/v1/receipts/:hash"
	Api_GetTransactionPool = "/api/v1/transactionpool"
	Api_SendRawTransaction = "/api/v1/transaction"
	Api_GenerateBlocks     = "/api/v1/block/generate"
)

const TlsPort = 443

type Action struct {
	name    string
	handler func(Params) map[string]interface{}
}

type restServer struct {
	router   *httprouter.Router
	listener net.Listener
	server   *http.Server
	postMap  map[string]Action
	getMap   map[string]Action
}

type ApiServer interface {
	Start() error
	Stop()
}

// StartServer brings the restful server up on the configured port and
// serves until Stop.  Callers usually run it on its own goroutine.
func StartServer(pool *mempool.TxPool) {
	Pool = pool
	rest := InitRestServer()
	rest.Start()
}

func InitRestServer() ApiServer {
	rt := &restServer{}
	rt.router = httprouter.New()
	rt.initializeMethod()
	rt.initGetHandler()
	rt.initPostHandler()
	return rt
}

func (rt *restServer) Start() error {
	params := config.Parameters
	if params.HttpRestPort == 0 {
		log.Fatal("Not configure HttpRestPort port ")
		return nil
	}

	if params.HttpRestPort%1000 == TlsPort {
		var err error
		rt.listener, err = rt.initTlsListen()
		if err != nil {
			log.Error("Https Cert: ", err.Error())
			return err
		}
	} else {
		var err error
		rt.listener, err = net.Listen("tcp", ":"+strconv.Itoa(params.HttpRestPort))
		if err != nil {
			log.Fatal("net.Listen: ", err.Error())
			return err
		}
	}

	var handler http.Handler = rt.router
	if params.EnableCORS {
		handler = cors.New(cors.Options{AllowedHeaders: []string{"Content-Type"}}).Handler(handler)
	}
	rt.server = &http.Server{Handler: handler}
	err := rt.server.Serve(rt.listener)
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("ListenAndServe: ", err.Error())
		return err
	}

	return nil
}

func (rt *restServer) initializeMethod() {
	getMethodMap := map[string]Action{
		Api_GetNodeState:       {name: "getnodestate", handler: GetNodeState},
		Api_GetTransaction:     {name: "gettransaction", handler: GetTransactionByHash},
		Api_GetReceipts:        {name: "getreceipts", handler: GetReceiptsByHash},
		Api_GetTransactionPool: {name: "gettransactionpool", handler: GetTransactionPool},
	}

	postMethodMap := map[string]Action{
		Api_SendRawTransaction: {name: "sendrawtransaction", handler: SendRawTransaction},
		Api_GenerateBlocks:     {name: "generateblocks", handler: GenerateBlocks},
	}
	rt.postMap = postMethodMap
	rt.getMap = getMethodMap
}

func (rt *restServer) getParams(r *http.Request, url string, ps httprouter.Params, req Params) Params {
	switch url {
	case Api_GetNodeState:
	case Api_GetTransaction:
		req["hash"] = ps.ByName("hash")
		req["raw"] = r.FormValue("raw")
	case Api_GetReceipts:
		req["hash"] = ps.ByName("hash")
	case Api_GetTransactionPool:
		req["state"] = r.FormValue("state")
	case Api_SendRawTransaction:
	case Api_GenerateBlocks:
	}
	return req
}

func (rt *restServer) initGetHandler() {
	for k := range rt.getMap {
		url := k
		h := rt.getMap[k]
		rt.router.GET(url, func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			req := rt.getParams(r, url, ps, make(Params))
			resp := h.handler(req)
			resp["Action"] = h.name
			rt.response(w, resp)
		})
	}
}

func (rt *restServer) initPostHandler() {
	for k := range rt.postMap {
		url := k
		h := rt.postMap[k]
		rt.router.POST(url, func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			body, _ := ioutil.ReadAll(r.Body)
			defer r.Body.Close()

			var resp map[string]interface{}
			req := make(Params)
			if err := json.Unmarshal(body, &req); err == nil {
				req = rt.getParams(r, url, ps, req)
				resp = h.handler(req)
			} else {
				resp = ResponsePack(lumaerr.ErrIllegalDataFormat, "")
			}
			resp["Action"] = h.name
			rt.response(w, resp)
		})
		rt.router.OPTIONS(url, func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			rt.write(w, []byte{})
		})
	}
}

func (rt *restServer) write(w http.ResponseWriter, data []byte) {
	w.Header().Add("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("content-type", "application/json;charset=utf-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Write(data)
}

func (rt *restServer) response(w http.ResponseWriter, resp map[string]interface{}) {
	resp["Desc"] = resp["Error"].(lumaerr.ErrCode).Reason()
	data, err := json.Marshal(resp)
	if err != nil {
		log.Error("HTTP Handle - json.Marshal: ", err)
		return
	}
	rt.write(w, data)
}

func (rt *restServer) Stop() {
	if rt.server != nil {
		rt.server.Shutdown(context.Background())
		log.Info("Close restful ")
	}
}

func (rt *restServer) initTlsListen() (net.Listener, error) {
	params := config.Parameters

	cert, err := tls.LoadX509KeyPair(params.RestCertPath, params.RestKeyPath)
	if err != nil {
		log.Error("load keys fail", err)
		return nil, err
	}

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
	}

	log.Info("TLS listen port is ", strconv.Itoa(params.HttpRestPort))
	listener, err := tls.Listen("tcp", ":"+strconv.Itoa(params.HttpRestPort), tlsConfig)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	return listener, nil
}
