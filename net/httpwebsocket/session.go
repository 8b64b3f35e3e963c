// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package httpwebsocket

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Session is one live websocket client connection.
type Session struct {
	mtx        sync.Mutex
	Connection *websocket.Conn
	LastActive int64
	SessionID  string
}

func (s *Session) Send(data []byte) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.Connection == nil {
		return errors.New("lost websocket connection")
	}
	return s.Connection.WriteMessage(websocket.TextMessage, data)
}

// SessionTimeoverCheck reports whether the session sat idle for longer
// than timeout seconds.
func (s *Session) SessionTimeoverCheck(timeout int64) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return time.Now().Unix()-s.LastActive > timeout
}

func (s *Session) UpdateActiveTime() {
	s.mtx.Lock()
	s.LastActive = time.Now().Unix()
	s.mtx.Unlock()
}

func (s *Session) close() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.Connection != nil {
		s.Connection.Close()
		s.Connection = nil
	}
}

type SessionList struct {
	sync.RWMutex
	OnlineList map[string]*Session
}

func NewSessionList() *SessionList {
	return &SessionList{OnlineList: make(map[string]*Session)}
}

// NewSession registers conn under a fresh random session id.
func (sl *SessionList) NewSession(conn *websocket.Conn) (*Session, error) {
	id := make([]byte, 16)
	if _, err := rand.Read(id); err != nil {
		return nil, err
	}
	session := &Session{
		Connection: conn,
		LastActive: time.Now().Unix(),
		SessionID:  hex.EncodeToString(id),
	}

	sl.Lock()
	sl.OnlineList[session.SessionID] = session
	sl.Unlock()

	return session, nil
}

func (sl *SessionList) CloseSession(session *Session) {
	if session == nil {
		return
	}

	sl.Lock()
	delete(sl.OnlineList, session.SessionID)
	sl.Unlock()

	session.close()
}

func (sl *SessionList) Get(sessionID string) *Session {
	sl.RLock()
	defer sl.RUnlock()
	return sl.OnlineList[sessionID]
}

func (sl *SessionList) ForEachSession(visit func(*Session)) {
	sl.RLock()
	defer sl.RUnlock()
	for _, v := range sl.OnlineList {
		visit(v)
	}
}

func (sl *SessionList) SessionCount() int {
	sl.RLock()
	defer sl.RUnlock()
	return len(sl.OnlineList)
}
