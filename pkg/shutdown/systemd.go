package shutdown

import (
	"context"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/sirupsen/logrus"
)

// NotifySystemd returns a Server that reports READY=1 to the service manager
// when it starts and STOPPING=1 once ctx is done. Add it after every listener
// is bound. Without NOTIFY_SOCKET it only waits for ctx.
func NotifySystemd(log logrus.FieldLogger) Server {
	return ServerFunc(func(ctx context.Context) error {
		sent, err := daemon.SdNotify(false, daemon.SdNotifyReady)
		switch {
		case err != nil:
			log.Warnf("systemd notify: %v", err)
		case sent:
			log.Info("Notified systemd that the service is ready")
		}

		<-ctx.Done()
		if sent {
			_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
		}
		return nil
	})
}
