// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package httpwebsocket

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	"github.com/lumachain/Lumachain.LUMA/common/log"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	lumaerr "github.com/lumachain/Lumachain.LUMA/errors"
	"github.com/lumachain/Lumachain.LUMA/events"
	"github.com/lumachain/Lumachain.LUMA/mempool"
	"github.com/lumachain/Lumachain.LUMA/net/httprestful"

	"github.com/gorilla/websocket"
)

var WebSocketServer *WsServer

// The push flags gate which event classes get broadcast to connected
// sessions.
var (
	PushNewTxsFlag      = true
	PushBlockHeightFlag = true
	PushOutdatedTxsFlag = true
)

const tlsPort = 443

type Handler func(map[string]interface{}) map[string]interface{}

type WsServer struct {
	Upgrader    websocket.Upgrader
	listener    net.Listener
	server      *http.Server
	SessionList *SessionList
	ActionMap   map[string]Handler
}

// StartServer brings the websocket server up and wires it to the event
// stream, then serves until Stop.  Callers usually run it on its own
// goroutine.
func StartServer(pool *mempool.TxPool) {
	httprestful.Pool = pool
	WebSocketServer = &WsServer{
		Upgrader:    websocket.Upgrader{},
		SessionList: NewSessionList(),
	}

	events.Subscribe(func(e *events.Event) {
		switch e.Type {
		case events.ETTransactionAccepted:
			if PushNewTxsFlag {
				go WebSocketServer.PushResult("sendnewtransaction", e.Data)
			}
		case events.ETBlockConnected:
			if PushBlockHeightFlag {
				go WebSocketServer.PushResult("sendblockheight", e.Data)
			}
		case events.ETResendOutdatedTxToTxPool:
			if PushOutdatedTxsFlag {
				go WebSocketServer.PushResult("sendoutdatedtransactions", e.Data)
			}
		}
	})

	WebSocketServer.Start()
}

func (ws *WsServer) Start() error {
	params := config.Parameters
	if params.HttpWsPort == 0 {
		log.Fatal("Not configure HttpWsPort port ")
		return nil
	}

	ws.initializeMethods()
	ws.Upgrader.CheckOrigin = func(r *http.Request) bool { return true }

	if params.HttpWsPort%1000 == tlsPort {
		var err error
		ws.listener, err = ws.initTlsListen()
		if err != nil {
			log.Error("Https Cert: ", err.Error())
			return err
		}
	} else {
		var err error
		ws.listener, err = net.Listen("tcp", ":"+strconv.Itoa(params.HttpWsPort))
		if err != nil {
			log.Fatal("net.Listen: ", err.Error())
			return err
		}
	}

	var done = make(chan bool)
	go ws.checkSessionsTimeout(done)

	ws.server = &http.Server{Handler: http.HandlerFunc(ws.webSocketHandler)}
	err := ws.server.Serve(ws.listener)

	done <- true
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("ListenAndServe: ", err.Error())
		return err
	}
	return nil
}

func (ws *WsServer) initializeMethods() {
	heartbeat := func(cmd map[string]interface{}) map[string]interface{} {
		return responsePack("heartbeat", lumaerr.Success, cmd["Userid"])
	}

	getsessioncount := func(cmd map[string]interface{}) map[string]interface{} {
		return responsePack("getsessioncount", lumaerr.Success, ws.SessionList.SessionCount())
	}

	ws.ActionMap = map[string]Handler{
		"getnodestate":       wrapAction(httprestful.GetNodeState),
		"gettransaction":     wrapAction(httprestful.GetTransactionByHash),
		"getreceipts":        wrapAction(httprestful.GetReceiptsByHash),
		"gettransactionpool": wrapAction(httprestful.GetTransactionPool),
		"sendrawtransaction": wrapAction(httprestful.SendRawTransaction),
		"heartbeat":          heartbeat,
		"getsessioncount":    getsessioncount,
	}
}

func wrapAction(h func(httprestful.Params) map[string]interface{}) Handler {
	return func(cmd map[string]interface{}) map[string]interface{} {
		return h(httprestful.Params(cmd))
	}
}

func responsePack(action string, errCode lumaerr.ErrCode, result interface{}) map[string]interface{} {
	resp := httprestful.ResponsePack(errCode, result)
	resp["Action"] = action
	return resp
}

func (ws *WsServer) Stop() {
	if ws.server != nil {
		ws.server.Shutdown(context.Background())
		log.Info("Close websocket ")
	}
}

func (ws *WsServer) checkSessionsTimeout(done chan bool) {
	interval := config.Parameters.WsHeartbeatInterval
	if interval == 0 {
		interval = 60
	}
	ticker := time.NewTicker(time.Second * time.Duration(interval))
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			var closeList []*Session
			ws.SessionList.ForEachSession(func(v *Session) {
				if v.SessionTimeoverCheck(int64(interval) * 2) {
					resp := responsePack("checksessionstimeout", lumaerr.ErrSessionExpired, "")
					resp["Desc"] = lumaerr.ErrSessionExpired.Reason()
					if data, err := json.Marshal(resp); err == nil {
						v.Send(data)
					}
					closeList = append(closeList, v)
				}
			})
			for _, s := range closeList {
				ws.SessionList.CloseSession(s)
			}
		case <-done:
			return
		}
	}
}

func (ws *WsServer) webSocketHandler(w http.ResponseWriter, r *http.Request) {
	wsConn, err := ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket Upgrader: ", err)
		return
	}
	defer wsConn.Close()

	newSession, err := ws.SessionList.NewSession(wsConn)
	if err != nil {
		log.Error("websocket NewSession: ", err)
		return
	}
	defer ws.SessionList.CloseSession(newSession)

	for {
		_, bysMsg, err := wsConn.ReadMessage()
		if err == nil {
			if ws.OnDataHandle(newSession, bysMsg, r) {
				newSession.UpdateActiveTime()
			}
			continue
		}
		e, ok := err.(net.Error)
		if !ok || !e.Timeout() {
			log.Debug("websocket conn: ", err)
			return
		}
	}
}

func (ws *WsServer) OnDataHandle(currentSession *Session, bysMsg []byte, r *http.Request) bool {
	var req = make(map[string]interface{})

	if err := json.Unmarshal(bysMsg, &req); err != nil {
		ws.response(currentSession.SessionID, responsePack("", lumaerr.ErrIllegalDataFormat, ""))
		log.Error("websocket OnDataHandle:", err)
		return false
	}

	actionName, ok := req["Action"].(string)
	if !ok {
		ws.response(currentSession.SessionID, responsePack("", lumaerr.ErrInvalidMethod, ""))
		return false
	}
	action, ok := ws.ActionMap[actionName]
	if !ok {
		ws.response(currentSession.SessionID, responsePack(actionName, lumaerr.ErrInvalidMethod, ""))
		return false
	}

	resp := action(req)
	resp["Action"] = actionName
	ws.response(currentSession.SessionID, resp)

	return true
}

func (ws *WsServer) response(sessionID string, resp map[string]interface{}) {
	resp["Desc"] = resp["Error"].(lumaerr.ErrCode).Reason()
	data, err := json.Marshal(resp)
	if err != nil {
		log.Error("Websocket response:", err)
		return
	}
	if session := ws.SessionList.Get(sessionID); session != nil {
		session.Send(data)
	}
}

// PushResult broadcasts one event to every connected session.
func (ws *WsServer) PushResult(action string, v interface{}) {
	var result interface{}
	switch action {
	case "sendnewtransaction":
		if tx, ok := v.(interfaces.Transaction); ok {
			result = tx.ToJSON()
		}
	case "sendblockheight":
		result = v
	case "sendoutdatedtransactions":
		if txs, ok := v.([]interfaces.Transaction); ok {
			hashes := make([]string, 0, len(txs))
			for _, tx := range txs {
				hashes = append(hashes, common.ToReversedString(tx.Hash()))
			}
			result = hashes
		}
	default:
		log.Error("httpwebsocket unknown push action: ", action)
		return
	}

	resp := responsePack(action, lumaerr.Success, result)
	resp["Desc"] = lumaerr.Success.Reason()
	data, err := json.Marshal(resp)
	if err != nil {
		log.Error("Websocket PushResult:", err)
		return
	}
	ws.broadcast(data)
}

func (ws *WsServer) broadcast(data []byte) {
	ws.SessionList.ForEachSession(func(v *Session) {
		v.Send(data)
	})
}

func (ws *WsServer) initTlsListen() (net.Listener, error) {
	params := config.Parameters

	cert, err := tls.LoadX509KeyPair(params.RestCertPath, params.RestKeyPath)
	if err != nil {
		log.Error("load keys fail", err)
		return nil, err
	}

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
	}

	log.Info("TLS listen port is ", strconv.Itoa(params.HttpWsPort))
	listener, err := tls.Listen("tcp", ":"+strconv.Itoa(params.HttpWsPort), tlsConfig)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	return listener, nil
}
