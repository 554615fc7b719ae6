package mqtt

import "fmt"

// Publish sends a device command. Used for the discovery queries on LWT and
// the periodic group state poll.
func (s *service) Publish(topic string, body string) error {
	token := s.client.Publish(topic, 0, false, body)
	if res := token.WaitTimeout(publishTimeout); res {
		return nil
	}
	if err := token.Error(); err != nil {
		return err
	}
	return fmt.Errorf("timed out publishing to %s", topic)
}
