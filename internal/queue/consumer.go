package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"
)

// StartBookingConsumer connects to RabbitMQ, declares the
// booking.created queue (durable), and starts consuming messages. Each
// message is appended to logs/booking.log in a single-line,
// human-friendly format. The function runs a reconnect loop with
// exponential backoff and keeps running indefinitely, logging any
// processing errors while rejecting the offending message so the
// server continues operating. It is intended to run on its own
// goroutine.
func StartBookingConsumer(url string, log *zap.Logger) {
    if log == nil {
        log = zap.NewNop()
    }

    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Warn("booking-consumer: failed to dial broker", zap.Error(err), zap.Duration("retry_in", backoff))
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        err = consumeLoop(conn, log)
        _ = conn.Close()
        if err != nil {
            log.Warn("booking-consumer: consume loop ended, reconnecting", zap.Error(err))
            time.Sleep(2 * time.Second)
        }
    }
}

func consumeLoop(conn *amqp.Connection, log *zap.Logger) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Warn("booking-consumer: set QoS failed", zap.Error(err))
    }

    _, err = ch.QueueDeclare(BookingCreatedQueue, true, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(BookingCreatedQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := appendBookingLog("logs", d.Body); err != nil {
            log.Warn("booking-consumer: handle message failed", zap.Error(err))
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

// appendBookingLog decodes a booking.created event and appends it as a
// single line to booking.log under dir, creating both as needed.
func appendBookingLog(dir string, body []byte) error {
    var ev BookingCreatedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return fmt.Errorf("mkdir %s: %w", dir, err)
    }
    fpath := filepath.Join(dir, "booking.log")
    f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    line := fmt.Sprintf("[%s] Booking created | event=%s | booking_id=%d | room_id=%d | person_id=%d | date=%s | slots=%d-%d\n",
        ev.CreatedAt, ev.EventID, ev.BookingID, ev.RoomID, ev.PersonID, ev.BookingDate, ev.StartSlot, ev.EndSlot)

    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}
