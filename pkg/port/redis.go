package port

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tidwall/redcon"
)

const redisOk = "OK"

var address = flag.String("address", ":6380", "The ip:port to listen on for the Redis protocol demo server.")

// redisCommand represents a Redis command with its arguments.
type redisCommand struct {
	command string
	args    []string
}

// redisOutput conforms to a real Redis server output on non pub/sub
// commands.
type redisOutput struct {
	closeConnection bool
	writeNil        bool
	err             *string
	writeInt        *int
	writeStrings    []string // A bulk-string-array reply (SMEMBERS, ZRANGE, ...).
	writeString     string
}

func closeRedisConnection(msg string) redisOutput { return redisOutput{writeString: msg, closeConnection: true} }
func writeRedisNil() redisOutput                { return redisOutput{writeNil: true} }
func writeRedisInt(i int) redisOutput           { return redisOutput{writeInt: &i} }
func writeRedisString(s string) redisOutput     { return redisOutput{writeString: s} }
func writeRedisStrings(ss []string) redisOutput { return redisOutput{writeStrings: ss} }

func writeRedisError(err error) redisOutput {
	msg := "ERR " + err.Error()
	return redisOutput{err: &msg}
}

// redisHandler translates parsed redisCommands into Store operations over
// the ordered Set and sorted-set containers: S*/Z* commands dispatch to
// pkg/container operations instead of a flat key/value store.
type redisHandler struct {
	store *Store
}

func newRedisHandler(store *Store) (*redisHandler, error) {
	if store == nil {
		return nil, errors.New("expected a non-nil store")
	}
	return &redisHandler{store: store}, nil
}

func (rh *redisHandler) handle(cmd redisCommand) redisOutput {
	switch cmd.command {
	case "PING":
		return writeRedisString("PONG")
	case "QUIT":
		return closeRedisConnection(redisOk)

	case "SADD":
		if len(cmd.args) < 2 {
			return writeRedisError(errors.New("wrong number of arguments for 'SADD' command"))
		}
		return writeRedisInt(rh.store.SAdd(cmd.args[0], cmd.args[1:]))
	case "SREM":
		if len(cmd.args) < 2 {
			return writeRedisError(errors.New("wrong number of arguments for 'SREM' command"))
		}
		return writeRedisInt(rh.store.SRem(cmd.args[0], cmd.args[1:]))
	case "SISMEMBER":
		if len(cmd.args) != 2 {
			return writeRedisError(errors.New("wrong number of arguments for 'SISMEMBER' command"))
		}
		if rh.store.SIsMember(cmd.args[0], cmd.args[1]) {
			return writeRedisInt(1)
		}
		return writeRedisInt(0)
	case "SCARD":
		if len(cmd.args) != 1 {
			return writeRedisError(errors.New("wrong number of arguments for 'SCARD' command"))
		}
		return writeRedisInt(rh.store.SCard(cmd.args[0]))
	case "SMEMBERS":
		if len(cmd.args) != 1 {
			return writeRedisError(errors.New("wrong number of arguments for 'SMEMBERS' command"))
		}
		return writeRedisStrings(rh.store.SMembers(cmd.args[0]))

	case "ZADD":
		if len(cmd.args) < 3 || len(cmd.args)%2 != 1 {
			return writeRedisError(errors.New("wrong number of arguments for 'ZADD' command"))
		}
		entries := make(map[string]float64, (len(cmd.args)-1)/2)
		for i := 1; i < len(cmd.args); i += 2 {
			score, err := strconv.ParseFloat(cmd.args[i], 64)
			if err != nil {
				return writeRedisError(fmt.Errorf("not a valid float: %s", cmd.args[i]))
			}
			entries[cmd.args[i+1]] = score
		}
		return writeRedisInt(rh.store.ZAdd(cmd.args[0], entries))
	case "ZSCORE":
		if len(cmd.args) != 2 {
			return writeRedisError(errors.New("wrong number of arguments for 'ZSCORE' command"))
		}
		score, ok := rh.store.ZScore(cmd.args[0], cmd.args[1])
		if !ok {
			return writeRedisNil()
		}
		return writeRedisString(strconv.FormatFloat(score, 'g', -1, 64))
	case "ZREM":
		if len(cmd.args) < 2 {
			return writeRedisError(errors.New("wrong number of arguments for 'ZREM' command"))
		}
		return writeRedisInt(rh.store.ZRem(cmd.args[0], cmd.args[1:]))
	case "ZCARD":
		if len(cmd.args) != 1 {
			return writeRedisError(errors.New("wrong number of arguments for 'ZCARD' command"))
		}
		return writeRedisInt(rh.store.ZCard(cmd.args[0]))
	case "ZRANK":
		if len(cmd.args) != 2 {
			return writeRedisError(errors.New("wrong number of arguments for 'ZRANK' command"))
		}
		rank, ok := rh.store.ZRank(cmd.args[0], cmd.args[1])
		if !ok {
			return writeRedisNil()
		}
		return writeRedisInt(rank)
	case "ZRANGE":
		if len(cmd.args) != 3 {
			return writeRedisError(errors.New("wrong number of arguments for 'ZRANGE' command"))
		}
		start, err := strconv.Atoi(cmd.args[1])
		if err != nil {
			return writeRedisError(fmt.Errorf("not a valid integer: %s", cmd.args[1]))
		}
		stop, err := strconv.Atoi(cmd.args[2])
		if err != nil {
			return writeRedisError(fmt.Errorf("not a valid integer: %s", cmd.args[2]))
		}
		return writeRedisStrings(rh.store.ZRange(cmd.args[0], start, stop))

	default:
		return writeRedisError(fmt.Errorf("unknown command '%s'", cmd.command))
	}
}

func writeRedisOutput(conn redcon.Conn, output redisOutput) {
	switch {
	case output.err != nil:
		conn.WriteError(*output.err)
	case output.writeNil:
		conn.WriteNull()
	case output.writeInt != nil:
		conn.WriteInt(*output.writeInt)
	case output.writeStrings != nil:
		conn.WriteArray(len(output.writeStrings))
		for _, s := range output.writeStrings {
			conn.WriteBulkString(s)
		}
	default:
		conn.WriteString(output.writeString)
	}
}

// RunRedisServer starts a Redis protocol server exposing store's ordered
// set and sorted-set commands, blocking until ctx is cancelled or the
// listener fails.
func RunRedisServer(ctx context.Context, store *Store) error {
	if *address == "" {
		return errors.New("expected a non-empty --address flag")
	}

	handler, err := newRedisHandler(store)
	if err != nil {
		return fmt.Errorf("failed to create redis handler: %w", err)
	}

	server := redcon.NewServerNetwork("tcp", *address,
		func(conn redcon.Conn, cmd redcon.Command) {
			command := redisCommand{command: string(cmd.Args[0]), args: make([]string, len(cmd.Args)-1)}
			for i := 1; i < len(cmd.Args); i++ {
				command.args[i-1] = string(cmd.Args[i])
			}
			output := handler.handle(command)
			if output.closeConnection {
				conn.WriteString(output.writeString)
				if err := conn.Close(); err != nil {
					slog.Error("failed to close connection", "error", err)
				}
				return
			}
			writeRedisOutput(conn, output)
		},
		func(conn redcon.Conn) bool { return true },
		func(conn redcon.Conn, err error) {},
	)

	serverErrSignal := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			serverErrSignal <- err
		}
		close(serverErrSignal)
	}()

	select {
	case <-ctx.Done():
		if err := server.Close(); err != nil {
			return fmt.Errorf("failed to close redis server: %w", err)
		}
		return nil
	case err := <-serverErrSignal:
		return fmt.Errorf("redis server stopped unexpectedly: %w", err)
	}
}
