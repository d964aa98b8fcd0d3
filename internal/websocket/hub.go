package websocket

import (
	"bytes"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"tradebot/internal/models"
	"tradebot/pkg/utils"
)

var fastJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// Пул JSON-буферов: broadcast идёт на каждый цикл опроса цен,
// без пула каждая рассылка аллоцирует заново
var jsonBufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// Hub управляет всеми активными WebSocket соединениями
//
// Назначение:
// Центральный менеджер для broadcast сообщений всем подключенным
// клиентам. Дашборд получает обновления цен, сделок и состояния
// движка без polling.
//
// Hub закрывает интерфейсы market.PriceBroadcaster и bot.Notifier:
// поллер и движок шлют события, не зная о WebSocket.
//
// Использование:
// 1. Создать hub: hub := NewHub()
// 2. Запустить в горутине: go hub.Run()
// 3. Отправлять сообщения: hub.BroadcastPriceUpdate(...)
type Hub struct {
	// Зарегистрированные клиенты
	clients map[*Client]bool

	// Broadcast канал для отправки сообщений всем клиентам
	broadcast chan []byte

	// Регистрация нового клиента
	register chan *Client

	// Отмена регистрации клиента
	unregister chan *Client

	logger *utils.Logger

	stopOnce sync.Once
	stop     chan struct{}

	mu sync.RWMutex
}

// NewHub создает новый Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     utils.L().WithComponent("websocket"),
		stop:       make(chan struct{}),
	}
}

// Run запускает главный цикл Hub
//
// Должен запускаться в отдельной горутине: go hub.Run()
func (h *Hub) Run() {
	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("Client connected", utils.Int("total_clients", total))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("Client disconnected", utils.Int("total_clients", total))

		case message := <-h.broadcast:
			// Копируем список под коротким RLock, отправляем без
			// блокировки, чтобы не задерживать register/unregister
			h.mu.RLock()
			clients := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mu.RUnlock()

			var toRemove []*Client
			for _, client := range clients {
				select {
				case client.send <- message:
				default:
					// Клиент не успевает вычитывать - отключаем
					toRemove = append(toRemove, client)
				}
			}

			if len(toRemove) > 0 {
				h.mu.Lock()
				for _, client := range toRemove {
					if _, ok := h.clients[client]; ok {
						delete(h.clients, client)
						close(client.send)
					}
				}
				total := len(h.clients)
				h.mu.Unlock()
				h.logger.Warn("Removed slow clients",
					utils.Int("removed", len(toRemove)),
					utils.Int("total_clients", total))
			}
		}
	}
}

// Broadcast сериализует сообщение и рассылает всем клиентам
func (h *Hub) Broadcast(message interface{}) {
	buf := jsonBufferPool.Get().(*bytes.Buffer)
	buf.Reset()

	if err := fastJSON.NewEncoder(buf).Encode(message); err != nil {
		h.logger.Error("Failed to marshal broadcast message", utils.Err(err))
		jsonBufferPool.Put(buf)
		return
	}

	// Encode добавляет завершающий перевод строки
	data := buf.Bytes()
	if len(data) > 0 && data[len(data)-1] == '\n' {
		data = data[:len(data)-1]
	}

	msgCopy := make([]byte, len(data))
	copy(msgCopy, data)
	jsonBufferPool.Put(buf)

	select {
	case h.broadcast <- msgCopy:
	default:
		// Очередь рассылки переполнена, событие пропускается:
		// клиенты получат актуальное состояние со следующим циклом
		h.logger.Warn("Broadcast queue full, dropping message")
	}
}

// BroadcastPriceUpdate отправляет пакет свежих тикеров
func (h *Hub) BroadcastPriceUpdate(tickers []models.Ticker) {
	h.Broadcast(NewPriceUpdateMessage(tickers))
}

// BroadcastTradeClosed отправляет событие закрытия сделки
func (h *Hub) BroadcastTradeClosed(trade *models.ClosedTrade) {
	h.Broadcast(NewTradeClosedMessage(trade))
}

// BroadcastStatusUpdate отправляет сводку состояния
func (h *Hub) BroadcastStatusUpdate(summary *models.StatusSummary) {
	h.Broadcast(NewStatusUpdateMessage(summary))
}

// BroadcastBotState отправляет изменение состояния движка
func (h *Hub) BroadcastBotState(running bool) {
	h.Broadcast(NewBotStateMessage(running))
}

// Stop завершает цикл Run и отключает всех клиентов
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
}

// ClientCount возвращает количество подключенных клиентов
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
