package hnap

import (
	"net/http"

	config "github.com/insightfinder/arris-agent/configs"
	"github.com/insightfinder/arris-agent/pkg/models"
)

// Service owns the HNAP session with the modem: the HTTP client, the
// negotiated private key and the session cookie. The key and cookie are
// written only by Login; every signed request reads them. Callers must
// not issue requests concurrently with a login.
type Service struct {
	Config     config.ModemConfig
	HttpClient *http.Client
	Endpoint   string

	privateKey    string
	cookie        string
	authenticated bool
}

// response is implemented by every typed HNAP reply. The modem reports
// application-level failure through a per-action result string even on
// HTTP 200, so decoding always goes through this accessor.
type response interface {
	Result() string
}

type LoginResponse struct {
	PublicKey   string `json:"PublicKey"`
	Challenge   string `json:"Challenge"`
	Cookie      string `json:"Cookie"`
	LoginResult string `json:"LoginResult"`
}

func (r LoginResponse) Result() string { return r.LoginResult }

type LoginWithChallengeResponse struct {
	LoginResult string `json:"LoginResult"`
}

func (r LoginWithChallengeResponse) Result() string { return r.LoginResult }

type DeviceStatusResponse struct {
	FirmwareVersion       string `json:"FirmwareVersion"`
	InternetConnection    string `json:"InternetConnection"`
	DownstreamFrequency   string `json:"DownstreamFrequency"`
	DownstreamSignalPower string `json:"DownstreamSignalPower"`
	DownstreamSignalSNR   string `json:"DownstreamSignalSNR"`
	DeviceStatusResult    string `json:"GetArrisDeviceStatusResult"`
}

func (r DeviceStatusResponse) Result() string { return r.DeviceStatusResult }

type RegisterInfoResponse struct {
	MacAddress         string `json:"MacAddress"`
	SerialNumber       string `json:"SerialNumber"`
	ModelName          string `json:"ModelName"`
	RegisterInfoResult string `json:"GetArrisRegisterInfoResult"`
}

func (r RegisterInfoResponse) Result() string { return r.RegisterInfoResult }

type StartupSequenceResponse struct {
	DSFreq                   string `json:"CustomerConnDSFreq"`
	DSComment                string `json:"CustomerConnDSComment"`
	ConnectivityStatus       string `json:"CustomerConnConnectivityStatus"`
	ConnectivityComment      string `json:"CustomerConnConnectivityComment"`
	BootStatus               string `json:"CustomerConnBootStatus"`
	BootComment              string `json:"CustomerConnBootComment"`
	ConfigurationFileStatus  string `json:"CustomerConnConfigurationFileStatus"`
	ConfigurationFileComment string `json:"CustomerConnConfigurationFileComment"`
	SecurityStatus           string `json:"CustomerConnSecurityStatus"`
	SecurityComment          string `json:"CustomerConnSecurityComment"`
	StartupSequenceResult    string `json:"GetCustomerStatusStartupSequenceResult"`
}

func (r StartupSequenceResponse) Result() string { return r.StartupSequenceResult }

type ConnectionInfoResponse struct {
	Uptime               models.Uptime     `json:"CustomerConnSystemUpTime"`
	SystemTime           models.SystemTime `json:"CustomerCurSystemTime"`
	NetworkAccess        string            `json:"CustomerConnNetworkAccess"`
	ConnectionInfoResult string            `json:"GetCustomerStatusConnectionInfoResult"`
}

func (r ConnectionInfoResponse) Result() string { return r.ConnectionInfoResult }

type DownstreamChannelInfoResponse struct {
	Channels                    models.ChannelList `json:"CustomerConnDownstreamChannel"`
	DownstreamChannelInfoResult string             `json:"GetCustomerStatusDownstreamChannelInfoResult"`
}

func (r DownstreamChannelInfoResponse) Result() string { return r.DownstreamChannelInfoResult }

type UpstreamChannelInfoResponse struct {
	Channels                  models.ChannelList `json:"CustomerConnUpstreamChannel"`
	UpstreamChannelInfoResult string             `json:"GetCustomerStatusUpstreamChannelInfoResult"`
}

func (r UpstreamChannelInfoResponse) Result() string { return r.UpstreamChannelInfoResult }

type StatusLogResponse struct {
	Entries         models.LogList `json:"CustomerStatusLogList"`
	StatusLogResult string         `json:"GetCustomerStatusLogResult"`
}

func (r StatusLogResponse) Result() string { return r.StatusLogResult }

// MetricsResponse is the combined GetMultipleHNAPs reply carrying one
// sub-record per metrics sub-action.
type MetricsResponse struct {
	DeviceStatus          DeviceStatusResponse          `json:"GetArrisDeviceStatusResponse"`
	RegisterInfo          RegisterInfoResponse          `json:"GetArrisRegisterInfoResponse"`
	StartupSequence       StartupSequenceResponse       `json:"GetCustomerStatusStartupSequenceResponse"`
	ConnectionInfo        ConnectionInfoResponse        `json:"GetCustomerStatusConnectionInfoResponse"`
	DownstreamChannelInfo DownstreamChannelInfoResponse `json:"GetCustomerStatusDownstreamChannelInfoResponse"`
	UpstreamChannelInfo   UpstreamChannelInfoResponse   `json:"GetCustomerStatusUpstreamChannelInfoResponse"`
	MultipleHNAPsResult   string                        `json:"GetMultipleHNAPsResult"`
}

func (r MetricsResponse) Result() string { return r.MultipleHNAPsResult }

// LogsResponse is the GetMultipleHNAPs reply restricted to the log
// sub-action.
type LogsResponse struct {
	Log                 StatusLogResponse `json:"GetCustomerStatusLogResponse"`
	MultipleHNAPsResult string            `json:"GetMultipleHNAPsResult"`
}

func (r LogsResponse) Result() string { return r.MultipleHNAPsResult }
