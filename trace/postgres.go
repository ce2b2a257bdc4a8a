package trace

import (
	"fmt"
	"log"

	"github.com/jackc/pgx"
)

// commitBatchSize mirrors the teacher's "commit every 10k inserts" choice:
// often enough that a Ctrl+C mid-run still keeps the majority of a trace,
// rarely enough that every step doesn't pay for a commit. Each recorded
// event is still one INSERT sent to the server.
const commitBatchSize = 10000

const createTableSQL = `
CREATE TABLE IF NOT EXISTS execution_trace (
	seq              bigserial PRIMARY KEY,
	run_num          integer NOT NULL,
	func_index       integer NOT NULL,
	instr_index      integer NOT NULL,
	opcode           smallint NOT NULL,
	op_name          text NOT NULL,
	stack_depth_pre  integer NOT NULL,
	stack_depth_post integer NOT NULL
)`

const insertSQL = `
INSERT INTO execution_trace
	(run_num, func_index, instr_index, opcode, op_name, stack_depth_pre, stack_depth_post)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Postgres persists one row per Event to a PostgreSQL table, batching
// commits so a long run isn't one giant uncommitted transaction.
type Postgres struct {
	pool   *pgx.ConnPool
	tx     *pgx.Tx
	runNum int
	seen   int
}

// DialPostgres opens a connection pool against connInfo (a libpq-style
// connection string), the form the REPL's `trace on CONNINFO` command
// accepts directly from the command line.
func DialPostgres(connInfo string) (*pgx.ConnPool, error) {
	cfg, err := pgx.ParseConnectionString(connInfo)
	if err != nil {
		return nil, fmt.Errorf("trace: parsing connection string: %w", err)
	}
	pool, err := pgx.NewConnPool(pgx.ConnPoolConfig{ConnConfig: cfg})
	if err != nil {
		return nil, fmt.Errorf("trace: connecting: %w", err)
	}
	return pool, nil
}

// NewPostgres opens a transaction against pool and tags every row with
// runNum, so multiple runs traced to the same table stay distinguishable.
func NewPostgres(pool *pgx.ConnPool, runNum int) (*Postgres, error) {
	if _, err := pool.Exec(createTableSQL); err != nil {
		return nil, fmt.Errorf("trace: creating execution_trace table: %w", err)
	}
	tx, err := pool.Begin()
	if err != nil {
		return nil, fmt.Errorf("trace: beginning transaction: %w", err)
	}
	return &Postgres{pool: pool, tx: tx, runNum: runNum}, nil
}

// Record inserts one row for ev. Errors are logged, not returned or
// panicked on, so a transient database hiccup never aborts the VM step
// that produced the event.
func (p *Postgres) Record(ev Event) {
	tag, err := p.tx.Exec(insertSQL, p.runNum, ev.FuncIndex, ev.InstrIndex, ev.Opcode, ev.Name, ev.StackDepthPre, ev.StackDepthPost)
	if err != nil {
		log.Print("trace: ", err)
		return
	}
	if n := tag.RowsAffected(); n != 1 {
		log.Printf("trace: wrong number of rows (%d) affected logging %s", n, ev.Name)
	}

	p.seen++
	if p.seen%commitBatchSize == 0 {
		if err := p.tx.Commit(); err != nil {
			log.Print("trace: commit failed: ", err)
			return
		}
		p.tx, err = p.pool.Begin()
		if err != nil {
			log.Print("trace: beginning next transaction: ", err)
		}
	}
}

// Close commits any buffered rows.
func (p *Postgres) Close() error {
	return p.tx.Commit()
}
