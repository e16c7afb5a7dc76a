// Package postgresql provides grid configurations stored as rows of a
// PostgreSQL table.
package postgresql

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"database/sql"
	"fmt"
	"io/ioutil"
	"sync"

	"github.com/arolek/p"
	"github.com/gdey/errors"
	"github.com/go-spatial/gridoverlay/crs"
	"github.com/go-spatial/gridoverlay/grid"
	"github.com/go-spatial/gridoverlay/providers"
	"github.com/go-spatial/tegola"
	"github.com/go-spatial/tegola/dict"
	"github.com/jackc/pgx"
	"github.com/prometheus/common/log"
)

// Name is the name of the provider type
const Name = "postgresql"

// AppName is shown by the pqclient
var AppName = "gridoverlay"

const (
	// DefaultSRID is the assumed srid of the grids unless specified
	DefaultSRID = tegola.WGS84
	// DefaultPort is the default port for postgresql
	DefaultPort = 5432
	// DefaultMaxConn is the max number of connections to attempt
	DefaultMaxConn = 10
	// DefaultSSLMode by default ssl is disabled
	DefaultSSLMode = "disable"

	// DefaultQuery selects the attribute columns of a grid by name. A NULL
	// column takes the default value of the attribute, a NULL srid the srid
	// of the provider.
	DefaultQuery = `
SELECT
  origin_x,
  origin_y,
  num_cells_x,
  num_cells_y,
  grid_offset_x,
  grid_offset_y,
  cell_size_x,
  cell_size_y,
  baseline_angle,

  draw_labels,
  label_type,
  label_precision,
  label_orientation,
  label_format,
  label_hemisphere,
  label_leading_zeros,
  label_degrees_diff,
  label_x_offset_h,
  label_x_offset_v,
  label_y_offset_h,
  label_y_offset_v,

  srid
FROM
  gridoverlay.grids
WHERE
  lower(name) = lower($1)
LIMIT 1;
`
)

const (
	// ConfigKeyHost is the config key for the postgres host
	ConfigKeyHost = "host"
	// ConfigKeyPort is the config key for the postgres port
	ConfigKeyPort = "port"
	// ConfigKeyDB is the config key for the postgres db
	ConfigKeyDB = "database"
	// ConfigKeyUser is the config key for the postgres user
	ConfigKeyUser = "user"
	// ConfigKeyPassword is the config key for the postgres user's password
	ConfigKeyPassword = "password"
	// ConfigKeySSLMode is the config key for the postgres SSL
	ConfigKeySSLMode = "ssl_mode"
	// ConfigKeySSLKey is the config key for the postgres SSL
	ConfigKeySSLKey = "ssl_key"
	// ConfigKeySSLCert is the config key for the postgres SSL
	ConfigKeySSLCert = "ssl_cert"
	// ConfigKeySSLRootCert is the config key for the postgres SSL
	ConfigKeySSLRootCert = "ssl_root_cert"
	// ConfigKeyMaxConn is the max number of connections to keep in the pool
	ConfigKeyMaxConn = "max_connections"
	// ConfigKeyQuery is the sql selecting the columns of DefaultQuery for a name.
	ConfigKeyQuery = "query"
)

func init() {
	providers.Register(Name, NewGridProvider, Cleanup)
}

// Provider implements the providers.Provider interface
type Provider struct {
	config pgx.ConnPoolConfig
	pool   *pgx.ConnPool
	srid   crs.SRID
	query  string
}

// NewGridProvider returns a grid provider backed by a postgresql database
func NewGridProvider(config dict.Dicter) (providers.Provider, error) {
	host, err := config.String(ConfigKeyHost, nil)
	if err != nil {
		return nil, err
	}
	db, err := config.String(ConfigKeyDB, nil)
	if err != nil {
		return nil, err
	}
	user, err := config.String(ConfigKeyUser, nil)
	if err != nil {
		return nil, err
	}
	password, err := config.String(ConfigKeyPassword, p.String(""))
	if err != nil {
		return nil, err
	}

	sslmode, err := config.String(ConfigKeySSLMode, p.String(DefaultSSLMode))
	if err != nil {
		return nil, err
	}
	sslkey, err := config.String(ConfigKeySSLKey, p.String(""))
	if err != nil {
		return nil, err
	}
	sslcert, err := config.String(ConfigKeySSLCert, p.String(""))
	if err != nil {
		return nil, err
	}
	sslrootcert, err := config.String(ConfigKeySSLRootCert, p.String(""))
	if err != nil {
		return nil, err
	}

	port, err := config.Int(ConfigKeyPort, p.Int(DefaultPort))
	if err != nil {
		return nil, err
	}
	maxcon, err := config.Int(ConfigKeyMaxConn, p.Int(DefaultMaxConn))
	if err != nil {
		return nil, err
	}
	srid, err := config.Int(providers.ConfigKeySRID, p.Int(DefaultSRID))
	if err != nil {
		return nil, err
	}
	query, err := config.String(ConfigKeyQuery, p.String(DefaultQuery))
	if err != nil {
		return nil, err
	}

	connConfig := pgx.ConnConfig{
		Host:     host,
		Port:     uint16(port),
		Database: db,
		User:     user,
		Password: password,
		LogLevel: pgx.LogLevelWarn,
		RuntimeParams: map[string]string{
			"default_transaction_read_only": "TRUE",
			"application_name":              AppName,
		},
	}
	if err = ConfigTLS(sslmode, sslkey, sslcert, sslrootcert, &connConfig); err != nil {
		return nil, err
	}

	prv := Provider{
		config: pgx.ConnPoolConfig{
			ConnConfig:     connConfig,
			MaxConnections: maxcon,
		},
		srid:  crs.SRID(srid),
		query: query,
	}
	if prv.pool, err = pgx.NewConnPool(prv.config); err != nil {
		return nil, errors.Wrapf(err, "failed while creating connection pool")
	}
	log.Infof("provider %v: connected to %v@%v:%v/%v", Name, user, host, port, db)

	pLock.Lock()
	instances = append(instances, &prv)
	pLock.Unlock()
	return &prv, nil
}

// ConfigTLS is used to configure TLS
// derived from github.com/jackc/pgx configTLS (https://github.com/jackc/pgx/blob/master/conn.go)
func ConfigTLS(sslMode string, sslKey string, sslCert string, sslRootCert string, cc *pgx.ConnConfig) error {
	switch sslMode {
	case "disable":
		cc.UseFallbackTLS = false
		cc.TLSConfig = nil
		cc.FallbackTLSConfig = nil
		return nil
	case "allow":
		cc.UseFallbackTLS = true
		cc.FallbackTLSConfig = &tls.Config{InsecureSkipVerify: true}
	case "prefer":
		cc.TLSConfig = &tls.Config{InsecureSkipVerify: true}
		cc.UseFallbackTLS = true
		cc.FallbackTLSConfig = nil
	case "require":
		cc.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	case "verify-ca", "verify-full":
		cc.TLSConfig = &tls.Config{
			ServerName: cc.Host,
		}
	default:
		return ErrInvalidSSLMode(sslMode)
	}

	tlsConfig := cc.TLSConfig
	if tlsConfig == nil {
		tlsConfig = cc.FallbackTLSConfig
	}

	if sslRootCert != "" {
		caCertPool := x509.NewCertPool()
		caCert, err := ioutil.ReadFile(sslRootCert)
		if err != nil {
			return fmt.Errorf("unable to read CA file (%q): %v", sslRootCert, err)
		}
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return fmt.Errorf("unable to add CA to cert pool")
		}
		tlsConfig.RootCAs = caCertPool
		tlsConfig.ClientCAs = caCertPool
	}

	if (sslCert == "") != (sslKey == "") {
		return ErrMissingCertKey
	} else if sslCert != "" {
		cert, err := tls.LoadX509KeyPair(sslCert, sslKey)
		if err != nil {
			return fmt.Errorf("unable to read cert: %v", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}
	return nil
}

// row holds the scanned columns of DefaultQuery.
type row struct {
	originX, originY     sql.NullFloat64
	numCellsX, numCellsY sql.NullInt64
	offsetX, offsetY     sql.NullInt64
	cellSizeX, cellSizeY sql.NullFloat64
	baselineAngle        sql.NullFloat64
	drawLabels           sql.NullBool
	labelType            sql.NullInt64
	labelPrecision       sql.NullInt64
	labelOrientation     sql.NullInt64
	labelFormat          sql.NullInt64
	labelHemisphere      sql.NullBool
	labelLeadingZeros    sql.NullBool
	labelDegreesDiff     sql.NullBool
	xOffsetH, xOffsetV   sql.NullFloat64
	yOffsetH, yOffsetV   sql.NullFloat64
	srid                 sql.NullInt64
}

func (r *row) dest() []interface{} {
	return []interface{}{
		&r.originX, &r.originY,
		&r.numCellsX, &r.numCellsY,
		&r.offsetX, &r.offsetY,
		&r.cellSizeX, &r.cellSizeY,
		&r.baselineAngle,
		&r.drawLabels,
		&r.labelType, &r.labelPrecision, &r.labelOrientation, &r.labelFormat,
		&r.labelHemisphere, &r.labelLeadingZeros, &r.labelDegreesDiff,
		&r.xOffsetH, &r.xOffsetV,
		&r.yOffsetH, &r.yOffsetV,
		&r.srid,
	}
}

// attributes returns the non NULL columns as an attribute set.
func (r *row) attributes() dict.Dict {
	attrs := make(dict.Dict)
	floats := map[string]sql.NullFloat64{
		grid.KeyOriginX:       r.originX,
		grid.KeyOriginY:       r.originY,
		grid.KeyCellSizeX:     r.cellSizeX,
		grid.KeyCellSizeY:     r.cellSizeY,
		grid.KeyBaselineAngle: r.baselineAngle,
		grid.KeyLabelXOffsetH: r.xOffsetH,
		grid.KeyLabelXOffsetV: r.xOffsetV,
		grid.KeyLabelYOffsetH: r.yOffsetH,
		grid.KeyLabelYOffsetV: r.yOffsetV,
	}
	for k, v := range floats {
		if v.Valid {
			attrs[k] = v.Float64
		}
	}
	ints := map[string]sql.NullInt64{
		grid.KeyNumCellsX:        r.numCellsX,
		grid.KeyNumCellsY:        r.numCellsY,
		grid.KeyGridOffsetX:      r.offsetX,
		grid.KeyGridOffsetY:      r.offsetY,
		grid.KeyLabelType:        r.labelType,
		grid.KeyLabelPrecision:   r.labelPrecision,
		grid.KeyLabelOrientation: r.labelOrientation,
		grid.KeyLabelFormat:      r.labelFormat,
	}
	for k, v := range ints {
		if v.Valid {
			attrs[k] = int(v.Int64)
		}
	}
	bools := map[string]sql.NullBool{
		grid.KeyDrawLabels:        r.drawLabels,
		grid.KeyLabelHemisphere:   r.labelHemisphere,
		grid.KeyLabelLeadingZeros: r.labelLeadingZeros,
		grid.KeyLabelDegreesDiff:  r.labelDegreesDiff,
	}
	for k, v := range bools {
		if v.Valid {
			attrs[k] = v.Bool
		}
	}
	return attrs
}

// Grid implements the providers.Provider interface
func (prv *Provider) Grid(ctx context.Context, name string) (providers.Grid, error) {
	var r row
	err := prv.pool.QueryRowEx(ctx, prv.query, nil, name).Scan(r.dest()...)
	if err == pgx.ErrNoRows {
		return providers.Grid{}, providers.ErrNotFound
	}
	if err != nil {
		return providers.Grid{}, errors.Wrapf(err, "error selecting grid %v", name)
	}
	srid := prv.srid
	if r.srid.Valid {
		srid = crs.SRID(r.srid.Int64)
	}
	return providers.Grid{
		Name:       name,
		SRID:       srid,
		Attributes: r.attributes(),
	}, nil
}

// Close will close the provider's database connection
func (prv *Provider) Close() { prv.pool.Close() }

var pLock sync.Mutex

// instances are all the providers created by NewGridProvider
var instances []*Provider

// Cleanup will close all database connections and forget all previously
// created providers
func Cleanup() {
	pLock.Lock()
	defer pLock.Unlock()
	for _, prv := range instances {
		prv.Close()
	}
	instances = nil
}
