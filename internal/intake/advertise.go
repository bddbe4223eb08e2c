package intake

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/OpenPrinting/go-mfp/util/uuid"
	"github.com/grandcat/zeroconf"
)

// ServiceType is the DNS-SD service type announced for the raw port.
const ServiceType = "_pdl-datastream._tcp"

// SupportedPDLs lists the data streams the spooler can classify.
const SupportedPDLs = "application/vnd.ibm-afp,application/vnd.ibm-scs,text/plain"

// DeviceUUID derives a stable device UUID from host.
func DeviceUUID(host string) string {
	return uuid.SHA1(uuid.NameSpaceDNS, "spoolsniff."+host).String()
}

// TXTRecords returns the DNS-SD TXT records for the raw print service.
func TXTRecords(name, deviceUUID string) []string {
	return []string{
		"txtvers=1",
		"ty=" + name,
		"pdl=" + SupportedPDLs,
		"UUID=" + deviceUUID,
	}
}

// Advertise registers the raw print port via mDNS. The caller must call
// Shutdown on the returned server.
func Advertise(name string, port int, deviceUUID string) (*zeroconf.Server, error) {
	if name == "" {
		name = DefaultDeviceName()
	}
	srv, err := zeroconf.Register(name, ServiceType, "local.", port, TXTRecords(name, deviceUUID), nil)
	if err != nil {
		return nil, fmt.Errorf("mDNS register %s: %w", ServiceType, err)
	}
	slog.Info("mDNS registered", "name", name, "service", ServiceType, "port", port, "uuid", deviceUUID)
	return srv, nil
}

// DefaultDeviceName is used when no device name is configured.
func DefaultDeviceName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "spoolsniff"
	}
	return "spoolsniff@" + host
}

// LocalIP returns the local address the OS would use for LAN traffic.
// It dials (without sending) the all-hosts multicast group so the routing
// table picks the outbound interface.
func LocalIP() string {
	conn, err := net.Dial("udp4", "224.0.0.1:80")
	if err != nil {
		return "0.0.0.0"
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}
